package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caresync-hms/internal/domain/entity"
)

// ─── Serialización ──────────────────────────────────────────────────────────

func TestRecordJSON_ConservaCampoType(t *testing.T) {
	mov := entity.Record{ID: "MOV001", Type: entity.TypeStockMovement, Fields: map[string]any{
		"itemId": "INV002", "type": "OUT", "reason": "dispensación",
	}}

	raw, err := json.Marshal(mov)
	require.NoError(t, err)

	var back entity.Record
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, entity.TypeStockMovement, back.Type)
	assert.Equal(t, "MOV001", back.ID)
	assert.Equal(t, "OUT", back.Fields["type"])
	assert.Equal(t, "OUT", back.Str("type"))
}
