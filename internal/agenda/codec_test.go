package agenda

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting_web/internal/models"
)

func TestParseItemElection(t *testing.T) {
	item, err := ParseItem([]byte(`{
		"type": "election",
		"title": "理事選舉",
		"positions": ["主席", "書記"],
		"unexpected": "dropped"
	}`))
	require.NoError(t, err)

	assert.Equal(t, models.AgendaItemElection, item.Type)
	assert.Equal(t, "理事選舉", item.Title)
	assert.Equal(t, []string{"主席", "書記"}, item.Positions)
	assert.Empty(t, item.Description)
	assert.Empty(t, item.BaseMotions)
}

func TestParseItemElectionEmptyPositions(t *testing.T) {
	item, err := ParseItem([]byte(`{"type": "election", "title": "補選", "positions": []}`))
	require.NoError(t, err)
	require.NotNil(t, item.Positions)
	assert.Len(t, item.Positions, 0)
}

func TestParseItemMotion(t *testing.T) {
	item, err := ParseItem([]byte(`{
		"type": "motion",
		"title": "預算案",
		"description": "年度預算",
		"baseMotions": [{"owner": "王小明", "motion": "通過預算"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, models.AgendaItemMotion, item.Type)
	assert.Equal(t, "年度預算", item.Description)
	require.Len(t, item.BaseMotions, 1)
	assert.Equal(t, models.BaseMotion{Owner: "王小明", Motion: "通過預算"}, item.BaseMotions[0])
}

func TestParseItemInfo(t *testing.T) {
	item, err := ParseItem([]byte(`{"type": "info", "title": "Welcome", "description": "Intro remarks"}`))
	require.NoError(t, err)

	assert.Equal(t, models.AgendaItemInfo, item.Type)
	assert.Equal(t, "Welcome", item.Title)
	assert.Equal(t, "Intro remarks", item.Description)
}

// 序列化後的項目必須恰好包含該類型定義的欄位
func TestCanonicalItemFieldProjection(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields []string
	}{
		{
			name:   "election",
			input:  `{"type": "election", "title": "選舉", "positions": ["主席"], "description": "不屬於此類型"}`,
			fields: []string{"type", "title", "positions"},
		},
		{
			name:   "motion",
			input:  `{"type": "motion", "title": "動議", "description": "說明", "baseMotions": [], "positions": ["多餘"]}`,
			fields: []string{"type", "title", "description", "baseMotions"},
		},
		{
			name:   "info",
			input:  `{"type": "info", "title": "報告", "description": "事項", "baseMotions": []}`,
			fields: []string{"type", "title", "description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ParseItem([]byte(tt.input))
			require.NoError(t, err)

			serialized, err := json.Marshal(item)
			require.NoError(t, err)

			var decoded map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(serialized, &decoded))

			assert.Len(t, decoded, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, decoded, field)
			}
		})
	}
}

func TestParseItemValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "missing type",
			input:   `{"title": "沒有類型"}`,
			wantErr: ErrInvalidItemType,
		},
		{
			name:    "unknown type",
			input:   `{"type": "poll", "title": "未知類型"}`,
			wantErr: ErrInvalidItemType,
		},
		{
			name:    "missing title",
			input:   `{"type": "info", "description": "沒有標題"}`,
			wantErr: ErrMissingTitle,
		},
		{
			name:    "empty title",
			input:   `{"type": "info", "title": "", "description": "空標題"}`,
			wantErr: ErrMissingTitle,
		},
		{
			name:    "not an object",
			input:   `[1, 2, 3]`,
			wantErr: ErrMalformedItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ParseItem([]byte(tt.input))
			assert.Nil(t, item)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseItemVariantFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{
			name:      "election missing positions",
			input:     `{"type": "election", "title": "選舉"}`,
			wantField: "positions",
		},
		{
			name:      "election mistyped positions",
			input:     `{"type": "election", "title": "選舉", "positions": "主席"}`,
			wantField: "positions",
		},
		{
			name:      "motion missing description",
			input:     `{"type": "motion", "title": "動議", "baseMotions": []}`,
			wantField: "description",
		},
		{
			name:      "motion base motion missing owner",
			input:     `{"type": "motion", "title": "動議", "description": "說明", "baseMotions": [{"motion": "無提案人"}]}`,
			wantField: "baseMotions",
		},
		{
			name:      "info missing description",
			input:     `{"type": "info", "title": "報告"}`,
			wantField: "description",
		},
		{
			name:      "info null description",
			input:     `{"type": "info", "title": "報告", "description": null}`,
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ParseItem([]byte(tt.input))
			assert.Nil(t, item)

			var variantErr *VariantFieldError
			require.ErrorAs(t, err, &variantErr)
			assert.Equal(t, tt.wantField, variantErr.Field)
		})
	}
}

// 相同輸入必須得到相同結果
func TestParseItemDeterministic(t *testing.T) {
	input := []byte(`{"type": "election", "title": "選舉", "positions": ["主席", "書記"]}`)

	first, err := ParseItem(input)
	require.NoError(t, err)
	second, err := ParseItem(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
