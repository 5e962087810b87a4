package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Identity
		wantErr bool
	}{
		{"Narrowband", "/cfg/J1713+0747.nb.yaml", Identity{Source: "J1713+0747", Type: Narrowband, Ext: "yaml"}, false},
		{"Wideband", "B1937+21.wb.yaml", Identity{Source: "B1937+21", Type: Wideband, Ext: "yaml"}, false},
		{"Uppercase marker", "B1937+21.WB.yaml", Identity{Source: "B1937+21", Type: Wideband, Ext: "yaml"}, false},
		{"Mixed case marker", "B1937+21.Nb.yaml", Identity{Source: "B1937+21", Type: Narrowband, Ext: "yaml"}, false},
		{"Two tokens", "J1713+0747.yaml", Identity{}, true},
		{"Four tokens", "J1713+0747.nb.yaml.fix", Identity{}, true},
		{"Unknown marker", "J1713+0747.xb.yaml", Identity{}, true},
		{"Empty source", ".nb.yaml", Identity{}, true},
		{"Empty extension", "J1713+0747.nb.", Identity{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentity(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToaType_Label(t *testing.T) {
	assert.Equal(t, "NB", Narrowband.Label())
	assert.Equal(t, "WB", Wideband.Label())
}
