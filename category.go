package blockstatus

import (
	"fmt"
)

// Category is the single group a block belongs to at classification time.
// The zero value is Default.
type Category int

const (
	// Default is the implicit category of every block not listed explicitly.
	// Its label is the block-for-block text.
	Default Category = iota
	// ExplicitBreak blocks are listed under blacklisted-blocks and are free to break.
	ExplicitBreak
	// ExplicitClaim blocks are listed under blacklisted-claim-blocks and are free in claims.
	ExplicitClaim
)

// Built-in labels used when the configuration omits a display text.
// The § codes are the host's legacy formatting codes.
const (
	DefaultBlockForBlockText = "§cBlock for Block"
	DefaultFreeToBreakText   = "§aFree to Break"
	DefaultFreeInClaimsText  = "§bFree in Claims"
)

// Categories lists every category in classification order.
func Categories() []Category {
	return []Category{ExplicitBreak, ExplicitClaim, Default}
}

func (c Category) String() string {
	switch c {
	case ExplicitBreak:
		return "explicit-break"
	case ExplicitClaim:
		return "explicit-claim"
	case Default:
		return "default"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// DefaultLabel returns the built-in label for c.
func (c Category) DefaultLabel() string {
	switch c {
	case ExplicitBreak:
		return DefaultFreeToBreakText
	case ExplicitClaim:
		return DefaultFreeInClaimsText
	default:
		return DefaultBlockForBlockText
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if c.String() == s {
			return c, nil
		}
	}
	return Default, fmt.Errorf("%w: unknown category %q", ErrParse, s)
}
