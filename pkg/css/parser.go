package css

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

// ParseDeclarations parses a declaration block ("width: 10px; flex: 1")
// into a Style, expanding shorthand properties. Malformed declarations are
// skipped and reported in the returned error; the style holds everything
// that parsed.
func ParseDeclarations(src string) (*Style, error) {
	style := NewStyle()
	input := parse.NewInput(bytes.NewReader([]byte(src)))
	parser := css.NewParser(input, true)

	var errs error
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err == io.EOF {
				return style, errs
			}
			if err != nil {
				return style, multierr.Append(errs, fmt.Errorf("parsing declarations: %w", err))
			}
			errs = multierr.Append(errs, fmt.Errorf("malformed declaration %q", strings.TrimSpace(string(data))))
		case css.DeclarationGrammar:
			property := strings.ToLower(string(data))
			value := joinValues(parser.Values())
			if value == "" {
				errs = multierr.Append(errs, fmt.Errorf("empty value for %q", property))
				continue
			}
			if err := expandShorthand(style, property, value); err != nil {
				errs = multierr.Append(errs, err)
			}
		case css.CustomPropertyGrammar:
			// Custom properties are not substituted.
			continue
		}
	}
}

// ParseInlineStyle parses a declaration block, dropping malformed declarations.
func ParseInlineStyle(styleAttr string) *Style {
	style, _ := ParseDeclarations(styleAttr)
	return style
}

// joinValues rebuilds a value string from tokens, collapsing whitespace and
// dropping a trailing !important.
func joinValues(tokens []css.Token) string {
	var sb strings.Builder
	pendingSpace := false
	for i, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			pendingSpace = sb.Len() > 0
			continue
		}
		if t.TokenType == css.DelimToken && string(t.Data) == "!" && isImportant(tokens[i+1:]) {
			break
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

func isImportant(rest []css.Token) bool {
	for _, t := range rest {
		if t.TokenType == css.WhitespaceToken {
			continue
		}
		return t.TokenType == css.IdentToken && strings.EqualFold(string(t.Data), "important")
	}
	return false
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) error {
	switch property {
	case "margin":
		return expandBoxProperty(style, "margin", "", value)
	case "padding":
		return expandBoxProperty(style, "padding", "", value)
	case "border-width":
		return expandBoxProperty(style, "border", "-width", value)
	case "border-style":
		return expandBoxProperty(style, "border", "-style", value)
	case "border":
		expandBorderProperty(style, value)
	case "flex":
		return expandFlex(style, value)
	case "flex-flow":
		return expandFlexFlow(style, value)
	default:
		style.Set(property, value)
	}
	return nil
}

// expandBoxProperty expands margin/padding/border-width shorthand
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
//
//	"10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, suffix, value string) error {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return fmt.Errorf("%s%s: expected 1 to 4 values, got %d", prefix, suffix, len(parts))
	}
	style.Set(prefix+"-top"+suffix, top)
	style.Set(prefix+"-right"+suffix, right)
	style.Set(prefix+"-bottom"+suffix, bottom)
	style.Set(prefix+"-left"+suffix, left)
	return nil
}

// expandBorderProperty expands border shorthand
// Format: "1px solid black" or "2px dotted #FF0000"
func expandBorderProperty(style *Style, value string) {
	sides := []string{"top", "right", "bottom", "left"}
	for _, part := range strings.Fields(value) {
		switch {
		case isBorderStyle(part):
			for _, side := range sides {
				style.Set("border-"+side+"-style", part)
			}
		case isLength(part):
			for _, side := range sides {
				style.Set("border-"+side+"-width", part)
			}
		default:
			style.Set("border-color", part)
		}
	}
}

func isBorderStyle(v string) bool {
	switch v {
	case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func isLength(v string) bool {
	size, ok := ParseSize(v, DefaultFontSize)
	return ok && size.Type == SizeLength
}

// expandFlex expands the flex shorthand into flex-grow, flex-shrink and
// flex-basis.
func expandFlex(style *Style, value string) error {
	grow, shrink, basis := "0", "1", "auto"
	switch value {
	case "none":
		grow, shrink = "0", "0"
	case "auto":
		grow, shrink = "1", "1"
	case "initial":
	default:
		var numbers []string
		basisSet := false
		for _, part := range strings.Fields(value) {
			if _, ok := parseNumber(part); ok && len(numbers) < 2 && !(basisSet && len(numbers) == 0) {
				numbers = append(numbers, part)
				continue
			}
			if basisSet {
				return fmt.Errorf("flex: unexpected %q", part)
			}
			if part != "content" {
				if _, ok := ParseSize(part, DefaultFontSize); !ok {
					return fmt.Errorf("flex: invalid basis %q", part)
				}
			}
			basis = part
			basisSet = true
		}
		if len(numbers) == 0 {
			grow = "1"
		} else {
			grow = numbers[0]
			if len(numbers) > 1 {
				shrink = numbers[1]
			}
			if !basisSet {
				basis = "0px"
			}
		}
	}
	style.Set("flex-grow", grow)
	style.Set("flex-shrink", shrink)
	style.Set("flex-basis", basis)
	return nil
}

func expandFlexFlow(style *Style, value string) error {
	for _, part := range strings.Fields(value) {
		switch part {
		case "row", "row-reverse", "column", "column-reverse":
			style.Set("flex-direction", part)
		case "nowrap", "wrap", "wrap-reverse":
			style.Set("flex-wrap", part)
		default:
			return fmt.Errorf("flex-flow: unexpected %q", part)
		}
	}
	return nil
}
