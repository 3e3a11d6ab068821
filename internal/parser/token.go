package parser

import (
	"strings"
	"unicode"
)

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	// TokenWord is a bare positional token.
	TokenWord TokenKind = iota
	// TokenFlag is "--name" with no value.
	TokenFlag
	// TokenFlagValue is "--name=value".
	TokenFlagValue
	// TokenKeyValue is "name=value".
	TokenKeyValue
)

// Token is one lexical unit of a command line. Col is the 0-based
// column of the token's first character, for caret-style error display.
type Token struct {
	Kind  TokenKind
	Text  string // unquoted text
	Key   string // TokenFlag, TokenFlagValue, TokenKeyValue
	Value string // TokenFlagValue, TokenKeyValue
	Col   int
}

// Keyword reports whether the token binds a named argument.
func (t Token) Keyword() bool {
	return t.Kind == TokenFlagValue || t.Kind == TokenKeyValue
}

// Tokenize splits a raw line on whitespace with shell-like quoting:
// single quotes are literal, double quotes allow backslash escapes,
// and a backslash outside quotes escapes the next character.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token

	runes := []rune(line)
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}

		start := i
		var b strings.Builder
		leadQuoted := runes[i] == '\'' || runes[i] == '"'

		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			switch r := runes[i]; r {
			case '\'':
				i++
				for i < len(runes) && runes[i] != '\'' {
					b.WriteRune(runes[i])
					i++
				}
				if i >= len(runes) {
					return nil, &ParseError{Msg: "unterminated single quote", Remaining: string(runes[start:]), Col: start}
				}
				i++ // closing quote
			case '"':
				i++
				for i < len(runes) && runes[i] != '"' {
					if runes[i] == '\\' && i+1 < len(runes) {
						i++
					}
					b.WriteRune(runes[i])
					i++
				}
				if i >= len(runes) {
					return nil, &ParseError{Msg: "unterminated double quote", Remaining: string(runes[start:]), Col: start}
				}
				i++
			case '\\':
				if i+1 < len(runes) {
					b.WriteRune(runes[i+1])
					i += 2
				} else {
					b.WriteRune(r)
					i++
				}
			default:
				b.WriteRune(r)
				i++
			}
		}

		tokens = append(tokens, classify(b.String(), start, leadQuoted))
	}

	return tokens, nil
}

// classify assigns the lexical class. A token that opens with a quote
// is always a word; quoting is how users pass values that would
// otherwise read as flags.
func classify(text string, col int, quoted bool) Token {
	tok := Token{Kind: TokenWord, Text: text, Col: col}
	if quoted {
		return tok
	}

	if strings.HasPrefix(text, "--") {
		rest := text[2:]
		if eq := strings.Index(rest, "="); eq >= 0 {
			tok.Kind = TokenFlagValue
			tok.Key = rest[:eq]
			tok.Value = rest[eq+1:]
		} else {
			tok.Kind = TokenFlag
			tok.Key = rest
		}
		return tok
	}

	if eq := strings.Index(text, "="); eq > 0 && isIdentifier(text[:eq]) {
		tok.Kind = TokenKeyValue
		tok.Key = text[:eq]
		tok.Value = text[eq+1:]
	}
	return tok
}

func isIdentifier(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return s != ""
}
