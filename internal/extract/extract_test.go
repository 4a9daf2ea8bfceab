package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDataURL(t *testing.T) {
	tests := []struct {
		name     string
		image    string
		wantMime string
		wantData string
		wantErr  error
	}{
		{name: "png data URL", image: "data:image/png;base64,iVBORw0KGgo=", wantMime: "image/png", wantData: "iVBORw0KGgo="},
		{name: "bare base64", image: "/9j/4AAQSkZJRg==", wantMime: "image/jpeg", wantData: "/9j/4AAQSkZJRg=="},
		{name: "data URL without mime", image: "data:;base64,AAAA", wantMime: "image/jpeg", wantData: "AAAA"},
		{name: "empty", image: "  ", wantErr: ErrNoImage},
		{name: "data URL without payload", image: "data:image/png;base64,", wantErr: ErrNoImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := splitDataURL(tt.image)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, mime)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestNew_WithoutAPIKeyUsesCanned(t *testing.T) {
	ex, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, "canned", ex.Backend())

	items, err := ex.Extract(context.Background(), "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "Burger", items[0].Name)
	assert.InDelta(t, 12.99, items[0].Price, 1e-9)
	assert.Equal(t, "Ice Cream", items[3].Name)

	// Callers get their own copy.
	items[0].Name = "changed"
	again, err := ex.Extract(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Equal(t, "Burger", again[0].Name)
}

func TestCanned_RequiresImage(t *testing.T) {
	_, err := Canned{}.Extract(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoImage)
}
