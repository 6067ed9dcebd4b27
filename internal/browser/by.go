package browser

import (
	"fmt"
	"strings"
)

type selectorKind int

const (
	kindCSS selectorKind = iota + 1
	kindID
	kindTagName
)

// By locates elements on the current page.
type By struct {
	kind  selectorKind
	value string
}

// ByCSS matches elements with a CSS selector.
func ByCSS(selector string) By { return By{kind: kindCSS, value: selector} }

// ByID matches the element whose id attribute equals id.
func ByID(id string) By { return By{kind: kindID, value: id} }

// ByTagName matches elements by tag name.
func ByTagName(tag string) By { return By{kind: kindTagName, value: tag} }

func (b By) String() string {
	switch b.kind {
	case kindCSS:
		return fmt.Sprintf("css selector %q", b.value)
	case kindID:
		return fmt.Sprintf("id %q", b.value)
	case kindTagName:
		return fmt.Sprintf("tag name %q", b.value)
	default:
		return "invalid selector"
	}
}

// CSS renders b as a plain CSS selector.
func (b By) CSS() (string, error) {
	if strings.TrimSpace(b.value) == "" {
		return "", fmt.Errorf("empty %s", b)
	}
	switch b.kind {
	case kindCSS:
		return b.value, nil
	case kindID:
		return `[id="` + escapeAttr(b.value) + `"]`, nil
	case kindTagName:
		if strings.ContainsAny(b.value, " .#[]>+~:,") {
			return "", fmt.Errorf("invalid %s", b)
		}
		return b.value, nil
	default:
		return "", fmt.Errorf("invalid selector kind %d", b.kind)
	}
}

// selector renders b for the driver's selector engine. Every kind is
// expressed as CSS so that ids and tags never fall through to text matching.
func (b By) selector() (string, error) {
	css, err := b.CSS()
	if err != nil {
		return "", err
	}
	return "css=" + css, nil
}

func escapeAttr(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
