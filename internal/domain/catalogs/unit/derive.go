package unit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/cel-go/cel"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPieceSentinel is the code of the piece unit.
const DefaultPieceSentinel = "PIECE"

// CodeDeriver computes a unit code from the English name. Must be pure.
type CodeDeriver func(enName string) string

// PieceDetector reports whether code identifies the piece unit. Must be pure.
type PieceDetector func(code string) bool

// SlugCode folds diacritics, upper-cases ASCII letters and joins the
// alphanumeric runs of name with "_": "Square metre" -> "SQUARE_METRE",
// "Şişe (cam)" -> "SISE_CAM".
func SlugCode(name string) string {
	fold := transform.Chain(
		runes.Map(foldDotless),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	gap := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z':
			r = unicode.ToUpper(r)
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('_')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}

// foldDotless maps the Turkish dotless i, which has no decomposition.
func foldDotless(r rune) rune {
	if r == 'ı' {
		return 'i'
	}
	return r
}

// SentinelDetector matches code against sentinel, ignoring case and surrounding space.
func SentinelDetector(sentinel string) PieceDetector {
	sentinel = strings.TrimSpace(sentinel)
	return func(code string) bool {
		return sentinel != "" && strings.EqualFold(strings.TrimSpace(code), sentinel)
	}
}

// CELDetector compiles a boolean CEL expression over the variable `code`,
// e.g. `code in ["PIECE", "ADET"]`. Evaluation errors count as "not a piece unit".
func CELDetector(expr string) (PieceDetector, error) {
	env, err := cel.NewEnv(cel.Variable("code", cel.StringType))
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile piece rule: %w", iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("piece rule must return bool, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("piece rule program: %w", err)
	}

	return func(code string) bool {
		out, _, err := prg.Eval(map[string]any{"code": strings.TrimSpace(code)})
		if err != nil {
			return false
		}
		v, ok := out.Value().(bool)
		return ok && v
	}, nil
}
