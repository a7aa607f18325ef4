package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    NumberInput
		wantErr bool
	}{
		{"number", `{"target_level": 150}`, "150", false},
		{"fraction", `{"target_level": 2.5}`, "2.5", false},
		{"string", `{"target_level": "150"}`, "150", false},
		{"garbage string", `{"target_level": "abc"}`, "abc", false},
		{"null", `{"target_level": null}`, "", false},
		{"missing", `{}`, "", false},
		{"boolean", `{"target_level": true}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ProjectionRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.TargetLevel)
		})
	}
}

func TestNumberInput_Formatters(t *testing.T) {
	assert.Equal(t, NumberInput("42"), IntInput(42))
	assert.Equal(t, NumberInput("1.5"), FloatInput(1.5))
	assert.Equal(t, NumberInput("3"), FloatInput(3))
}
