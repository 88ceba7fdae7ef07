package service

import (
	"testing"

	"github.com/focusflow/focusflow-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_CoverEveryKind(t *testing.T) {
	codecs := Codecs()

	require.Len(t, codecs, 3)
	for kind, codec := range codecs {
		assert.Equal(t, kind, codec.Kind())
	}
}

func TestNoteCodec_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		payload models.EntityPayload
		want    models.EntityPayload
		wantErr bool
	}{
		{
			name:    "empty payload gets all defaults",
			payload: models.EntityPayload{},
			want: models.EntityPayload{
				"title":        "Untitled",
				"content":      "",
				"tags":         []string{},
				"is_encrypted": false,
			},
		},
		{
			name: "full payload passes through",
			payload: models.EntityPayload{
				"title":        "Groceries",
				"content":      "milk",
				"tags":         []string{"home"},
				"is_encrypted": true,
			},
			want: models.EntityPayload{
				"title":        "Groceries",
				"content":      "milk",
				"tags":         []string{"home"},
				"is_encrypted": true,
			},
		},
		{
			name: "tags in decoded-JSON form",
			payload: models.EntityPayload{
				"tags": []any{"home", "weekly"},
			},
			want: models.EntityPayload{
				"title":        "Untitled",
				"content":      "",
				"tags":         []string{"home", "weekly"},
				"is_encrypted": false,
			},
		},
		{
			name:    "unknown fields are dropped",
			payload: models.EntityPayload{"title": "A", "bogus": 1},
			want: models.EntityPayload{
				"title":        "A",
				"content":      "",
				"tags":         []string{},
				"is_encrypted": false,
			},
		},
		{
			name:    "non-string title rejected",
			payload: models.EntityPayload{"title": 42},
			wantErr: true,
		},
		{
			name:    "non-bool is_encrypted rejected",
			payload: models.EntityPayload{"is_encrypted": "yes"},
			wantErr: true,
		},
		{
			name:    "tags with non-string element rejected",
			payload: models.EntityPayload{"tags": []any{"ok", 3}},
			wantErr: true,
		},
	}

	codec := noteCodec{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Normalize(tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskCodec_Normalize(t *testing.T) {
	codec := taskCodec{}

	t.Run("status is required", func(t *testing.T) {
		_, err := codec.Normalize(models.EntityPayload{"title": "Ship it"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := codec.Normalize(models.EntityPayload{"status": "paused"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown priority rejected", func(t *testing.T) {
		_, err := codec.Normalize(models.EntityPayload{"status": "todo", "priority": "urgent"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("defaults filled around required status", func(t *testing.T) {
		got, err := codec.Normalize(models.EntityPayload{"status": "doing"})
		require.NoError(t, err)
		assert.Equal(t, models.EntityPayload{
			"title":       "Untitled",
			"description": "",
			"status":      "doing",
			"priority":    "medium",
		}, got)
	})

	t.Run("explicit fields kept", func(t *testing.T) {
		got, err := codec.Normalize(models.EntityPayload{
			"title":       "Ship it",
			"description": "before friday",
			"status":      "done",
			"priority":    "high",
		})
		require.NoError(t, err)
		assert.Equal(t, "done", got["status"])
		assert.Equal(t, "high", got["priority"])
	})
}

func TestHabitCodec_Normalize(t *testing.T) {
	codec := habitCodec{}

	t.Run("empty payload gets all defaults", func(t *testing.T) {
		got, err := codec.Normalize(models.EntityPayload{})
		require.NoError(t, err)
		assert.Equal(t, models.EntityPayload{
			"name":            "Untitled",
			"color":           "#808080",
			"streak":          int64(0),
			"completed_dates": []string{},
		}, got)
	})

	t.Run("streak accepts the decoded-JSON float form", func(t *testing.T) {
		got, err := codec.Normalize(models.EntityPayload{"streak": float64(12)})
		require.NoError(t, err)
		assert.Equal(t, int64(12), got["streak"])
	})

	t.Run("non-numeric streak rejected", func(t *testing.T) {
		_, err := codec.Normalize(models.EntityPayload{"streak": "twelve"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("completed dates kept", func(t *testing.T) {
		got, err := codec.Normalize(models.EntityPayload{
			"name":            "Run",
			"completed_dates": []any{"2026-01-01", "2026-01-02"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-01", "2026-01-02"}, got["completed_dates"])
	})
}
