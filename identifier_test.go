package blockstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    BlockID
		wantErr bool
	}{
		{name: "namespaced", raw: "game:stone", want: "game:stone"},
		{name: "default namespace", raw: "stone", want: "minecraft:stone"},
		{name: "empty namespace", raw: ":stone", want: "minecraft:stone"},
		{name: "path with slash and dot", raw: "mod:ores/deep.iron_ore", want: "mod:ores/deep.iron_ore"},
		{name: "namespace with dash", raw: "my-mod:block_1", want: "my-mod:block_1"},
		{name: "empty", raw: "", wantErr: true},
		{name: "empty path", raw: "game:", wantErr: true},
		{name: "bang", raw: "not_a_valid_id!!", wantErr: true},
		{name: "uppercase", raw: "Game:Stone", wantErr: true},
		{name: "slash in namespace", raw: "ga/me:stone", wantErr: true},
		{name: "second colon", raw: "game:stone:extra", wantErr: true},
		{name: "whitespace", raw: " game:stone", wantErr: true},
		{name: "unicode", raw: "game:stöne", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBlockID(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParse)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlockIDParts(t *testing.T) {
	id := MustParseBlockID("mod:ores/deep")
	assert.Equal(t, "mod", id.Namespace())
	assert.Equal(t, "ores/deep", id.Path())
	assert.Equal(t, "mod:ores/deep", id.String())
}

func TestMustParseBlockIDPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseBlockID("Bad Id") })
}

func TestCategoryText(t *testing.T) {
	for _, c := range Categories() {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	_, err := ParseCategory("sometimes")
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, "category(9)", Category(9).String())
}

func TestCategoryDefaultLabel(t *testing.T) {
	assert.Equal(t, "§cBlock for Block", Default.DefaultLabel())
	assert.Equal(t, "§aFree to Break", ExplicitBreak.DefaultLabel())
	assert.Equal(t, "§bFree in Claims", ExplicitClaim.DefaultLabel())
}
