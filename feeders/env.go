package feeders

import (
	"fmt"
	"strings"

	"github.com/golobby/config/v3/pkg/feeder"
)

// Environment variables read by EnvFeeder and DotEnvFeeder.
const (
	EnvUseAdvancedTooltip = "BLOCKSTATUS_USE_ADVANCED_TOOLTIP"
	EnvUseLore            = "BLOCKSTATUS_USE_LORE"
	EnvBlockForBlockText  = "BLOCKSTATUS_BLOCK_FOR_BLOCK_TEXT"
	EnvFreeToBreakText    = "BLOCKSTATUS_FREE_TO_BREAK_TEXT"
	EnvFreeInClaimsText   = "BLOCKSTATUS_FREE_IN_CLAIMS_TEXT"
	EnvBreakBlocks        = "BLOCKSTATUS_BLACKLISTED_BLOCKS"
	EnvClaimBlocks        = "BLOCKSTATUS_BLACKLISTED_CLAIM_BLOCKS"
)

// envDocument is what golobby decodes the variables into. Every field is a
// string so that type problems surface in the loader, where they are
// recovered per field, instead of failing the whole feed.
type envDocument struct {
	UseAdvancedTooltip string `env:"BLOCKSTATUS_USE_ADVANCED_TOOLTIP"`
	UseLore            string `env:"BLOCKSTATUS_USE_LORE"`
	BlockForBlockText  string `env:"BLOCKSTATUS_BLOCK_FOR_BLOCK_TEXT"`
	FreeToBreakText    string `env:"BLOCKSTATUS_FREE_TO_BREAK_TEXT"`
	FreeInClaimsText   string `env:"BLOCKSTATUS_FREE_IN_CLAIMS_TEXT"`
	BreakBlocks        string `env:"BLOCKSTATUS_BLACKLISTED_BLOCKS"`
	ClaimBlocks        string `env:"BLOCKSTATUS_BLACKLISTED_CLAIM_BLOCKS"`
}

// document keeps only the variables that were set. Lists are comma separated.
func (e envDocument) document() map[string]any {
	doc := map[string]any{}

	display := map[string]any{}
	for key, value := range map[string]string{
		"useAdvancedTooltip": e.UseAdvancedTooltip,
		"useLore":            e.UseLore,
		"blockForBlockText":  e.BlockForBlockText,
		"freeToBreakText":    e.FreeToBreakText,
		"freeInClaimsText":   e.FreeInClaimsText,
	} {
		if value != "" {
			display[key] = value
		}
	}
	if len(display) > 0 {
		doc["display"] = display
	}

	if e.BreakBlocks != "" {
		doc["blacklisted-blocks"] = splitList(e.BreakBlocks)
	}
	if e.ClaimBlocks != "" {
		doc["blacklisted-claim-blocks"] = splitList(e.ClaimBlocks)
	}
	return doc
}

func splitList(s string) []any {
	var out []any
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvFeeder reads BLOCKSTATUS_* variables from the process environment.
// It is meant as an overlay on top of a file feeder (see Layered).
type EnvFeeder struct{}

// NewEnvFeeder creates an EnvFeeder.
func NewEnvFeeder() EnvFeeder {
	return EnvFeeder{}
}

// Read returns a document holding only the variables that are set.
func (EnvFeeder) Read() (map[string]any, error) {
	var e envDocument
	if err := (feeder.Env{}).Feed(&e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvFeederFailed, err)
	}
	return e.document(), nil
}
