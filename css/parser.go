package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// SyntaxError is returned when stylesheet text cannot be parsed.
type SyntaxError struct {
	Line    int // 1-based, 0 when unknown
	Column  int
	Message string
	err     error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("css syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "css syntax error: " + e.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

func newSyntaxError(err error) *SyntaxError {
	se := &SyntaxError{Message: err.Error(), err: err}
	var perr *parse.Error
	if errors.As(err, &perr) {
		se.Line, se.Column, se.Message = perr.Line, perr.Column, perr.Message
	}
	return se
}

// Parser parses CSS stylesheets into ordered trees.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	b, err := p.parseBody(parser, css.ErrorGrammar)
	if err != nil {
		return nil, err
	}
	return &Stylesheet{Items: b.items}, nil
}

// body accumulates content of a stylesheet, an at-rule block or a rule.
// Comments are held until the next entry: a declaration takes them as its
// own, anything else gets them as separate items in front of it.
type body struct {
	items    []Item
	decls    []Declaration
	raw      []css.Token
	comments []string
}

func (b *body) flush() {
	for _, c := range b.comments {
		b.items = append(b.items, Item{Comment: &c})
	}
	b.comments = nil
}

func (b *body) addItem(item Item) {
	b.flush()
	b.items = append(b.items, item)
}

func (b *body) addDeclaration(d Declaration) {
	d.Comments, b.comments = b.comments, nil
	b.decls = append(b.decls, d)
}

// parseBody collects items and declarations until end grammar closes the
// current block or rule. At top level end is ErrorGrammar and only end of
// input stops the loop. Rules nested in rules are kept the same way as
// rules nested in at-rule blocks.
func (p *Parser) parseBody(parser *css.Parser, end css.GrammarType) (*body, error) {
	var (
		b         = &body{}
		selectors []string
	)

	for {
		gt, tt, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, newSyntaxError(err)
			}
			if end != css.ErrorGrammar {
				p.log.Debug("Unterminated block at end of input")
			}
			b.flush()
			return b, nil

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if gt == end {
				b.flush()
				return b, nil
			}
			// stray "}" - nothing to close

		case css.CommentGrammar:
			b.comments = append(b.comments, string(data))

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import, @charset)
			at := &AtRule{Name: string(data), Prelude: joinTokens(parser.Values())}
			b.addItem(Item{AtRule: at})
			p.log.Debug("Parsed @-rule", zap.String("rule", at.Name))

		case css.BeginAtRuleGrammar:
			block := &Block{Name: string(data), Prelude: joinTokens(parser.Values())}
			inner, err := p.parseBody(parser, css.EndAtRuleGrammar)
			if err != nil {
				return nil, err
			}
			block.Items, block.Declarations, block.Raw = inner.items, inner.decls, joinTokens(inner.raw)
			b.addItem(Item{Block: block})
			p.log.Debug("Parsed @-rule block", zap.String("rule", block.Name), zap.String("prelude", block.Prelude), zap.Int("items", len(inner.items)))

		case css.QualifiedRuleGrammar:
			// One part of comma separated selector list, the last part comes with BeginRulesetGrammar
			selectors = append(selectors, selectorText(data, parser.Values()))

		case css.BeginRulesetGrammar:
			selectors = append(selectors, selectorText(data, parser.Values()))
			rule := &Rule{Selector: strings.Join(selectors, ", ")}
			selectors = nil

			inner, err := p.parseBody(parser, css.EndRulesetGrammar)
			if err != nil {
				return nil, err
			}
			rule.Declarations, rule.Items = inner.decls, inner.items
			b.addItem(Item{Rule: rule})
			if end == css.EndRulesetGrammar {
				p.log.Debug("Parsed nested rule", zap.String("selector", rule.Selector))
			}

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if d, ok := newDeclaration(data, parser.Values()); ok {
				b.addDeclaration(d)
			} else {
				p.log.Debug("Skipping empty declaration", zap.ByteString("property", data))
			}

		case css.TokenGrammar:
			// Body of unknown @-rule comes token by token, keep it as is
			if end == css.EndAtRuleGrammar {
				b.raw = append(b.raw, css.Token{TokenType: tt, Data: bytes.Clone(data)})
			}
		}
	}
}

// newDeclaration builds declaration from property name and value tokens.
// Custom properties may have empty value.
func newDeclaration(property []byte, tokens []css.Token) (Declaration, bool) {
	tokens, important := stripImportant(tokens)
	d := Declaration{
		Property:  strings.TrimSpace(string(property)),
		Value:     strings.TrimSpace(joinTokens(tokens)),
		Important: important,
	}
	if d.Property == "" {
		return d, false
	}
	return d, d.Value != "" || strings.HasPrefix(d.Property, "--")
}

// stripImportant removes trailing "!important" from value tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end < 2 {
		return tokens, false
	}
	last := tokens[end-1]
	if last.TokenType != css.IdentToken || !strings.EqualFold(string(last.Data), "important") {
		return tokens, false
	}
	bang := end - 2
	for bang > 0 && tokens[bang].TokenType == css.WhitespaceToken {
		bang--
	}
	if tokens[bang].TokenType != css.DelimToken || string(tokens[bang].Data) != "!" {
		return tokens, false
	}
	return tokens[:bang], true
}

// selectorText builds selector string from token data and values.
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	sb.WriteString(joinTokens(values))
	return strings.TrimSpace(sb.String())
}

// joinTokens builds raw text from tokens collapsing whitespace runs into
// single space and trimming both ends.
func joinTokens(tokens []css.Token) string {
	var (
		sb    strings.Builder
		space bool
	)
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}
