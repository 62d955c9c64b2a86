package lexer

import (
	"strconv"
	"unicode"
)

// Lexer tokenizes C source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	l.skipComments()
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
	case '+':
		switch l.peekChar() {
		case '+':
			tok = l.twoCharToken(TokenIncrement, "++")
		case '=':
			tok = l.twoCharToken(TokenPlusAssign, "+=")
		default:
			tok = l.newToken(TokenPlus, l.ch)
		}
	case '-':
		switch l.peekChar() {
		case '-':
			tok = l.twoCharToken(TokenDecrement, "--")
		case '=':
			tok = l.twoCharToken(TokenMinusAssign, "-=")
		case '>':
			tok = l.twoCharToken(TokenArrow, "->")
		default:
			tok = l.newToken(TokenMinus, l.ch)
		}
	case '*':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenStarAssign, "*=")
		} else {
			tok = l.newToken(TokenStar, l.ch)
		}
	case '/':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenSlashAssign, "/=")
		} else {
			tok = l.newToken(TokenSlash, l.ch)
		}
	case '%':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenPercentAssign, "%=")
		} else {
			tok = l.newToken(TokenPercent, l.ch)
		}
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenEq, "==")
		} else {
			tok = l.newToken(TokenAssign, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenNe, "!=")
		} else {
			tok = l.newToken(TokenNot, l.ch)
		}
	case '<':
		if l.peekChar() == '<' {
			l.readChar()
			if l.peekChar() == '=' {
				tok = l.twoCharToken(TokenShlAssign, "<<=")
			} else {
				tok.Type = TokenShl
				tok.Literal = "<<"
			}
		} else if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenLe, "<=")
		} else {
			tok = l.newToken(TokenLt, l.ch)
		}
	case '>':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '=' {
				tok = l.twoCharToken(TokenShrAssign, ">>=")
			} else {
				tok.Type = TokenShr
				tok.Literal = ">>"
			}
		} else if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenGe, ">=")
		} else {
			tok = l.newToken(TokenGt, l.ch)
		}
	case '&':
		switch l.peekChar() {
		case '&':
			tok = l.twoCharToken(TokenAnd, "&&")
		case '=':
			tok = l.twoCharToken(TokenAndAssign, "&=")
		default:
			tok = l.newToken(TokenAmpersand, l.ch)
		}
	case '|':
		switch l.peekChar() {
		case '|':
			tok = l.twoCharToken(TokenOr, "||")
		case '=':
			tok = l.twoCharToken(TokenOrAssign, "|=")
		default:
			tok = l.newToken(TokenPipe, l.ch)
		}
	case '^':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenXorAssign, "^=")
		} else {
			tok = l.newToken(TokenCaret, l.ch)
		}
	case '~':
		tok = l.newToken(TokenTilde, l.ch)
	case '(':
		tok = l.newToken(TokenLParen, l.ch)
	case ')':
		tok = l.newToken(TokenRParen, l.ch)
	case '{':
		tok = l.newToken(TokenLBrace, l.ch)
	case '}':
		tok = l.newToken(TokenRBrace, l.ch)
	case '[':
		tok = l.newToken(TokenLBracket, l.ch)
	case ']':
		tok = l.newToken(TokenRBracket, l.ch)
	case ';':
		tok = l.newToken(TokenSemicolon, l.ch)
	case ',':
		tok = l.newToken(TokenComma, l.ch)
	case '.':
		tok = l.newToken(TokenDot, l.ch)
	case '?':
		tok = l.newToken(TokenQuestion, l.ch)
	case ':':
		tok = l.newToken(TokenColon, l.ch)
	case '"':
		raw, str := l.readString()
		tok.Type = TokenString
		tok.Literal = raw
		tok.Str = str
		tok.Len = len(str) + 1 // includes the NUL terminator
		return tok
	case '\'':
		raw, val := l.readCharLiteral()
		tok.Type = TokenInt
		tok.Literal = raw
		tok.Value = val
		return tok
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			tok.Type = TokenInt
			tok.Literal = l.readNumber()
			tok.Value, _ = strconv.ParseInt(tok.Literal, 10, 64)
			return tok
		} else {
			tok = l.newToken(TokenIllegal, l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

// twoCharToken consumes the peeked character and returns a multi-character token
func (l *Lexer) twoCharToken(tokenType TokenType, literal string) Token {
	l.readChar()
	return Token{Type: tokenType, Literal: literal, Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComments() {
	for l.ch == '/' {
		if l.peekChar() == '/' {
			// Single-line comment
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			l.skipWhitespace()
		} else if l.peekChar() == '*' {
			// Multi-line comment
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.ch == 0 {
					break
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
			l.skipWhitespace()
		} else {
			break
		}
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readNumber() string {
	pos := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readString reads a string literal, returning the raw literal text and its
// decoded contents with escape sequences resolved.
func (l *Lexer) readString() (string, string) {
	l.readChar() // consume opening quote
	pos := l.pos
	var decoded []byte
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			decoded = append(decoded, unescape(l.ch))
		} else {
			decoded = append(decoded, l.ch)
		}
		l.readChar()
	}
	raw := l.input[pos:l.pos]
	l.readChar() // consume closing quote
	return raw, string(decoded)
}

// readCharLiteral reads a character literal such as 'a' or '\n'
func (l *Lexer) readCharLiteral() (string, int64) {
	l.readChar() // consume opening quote
	pos := l.pos
	var val int64
	if l.ch == '\\' {
		l.readChar()
		val = int64(unescape(l.ch))
	} else {
		val = int64(l.ch)
	}
	l.readChar()
	raw := l.input[pos:l.pos]
	if l.ch == '\'' {
		l.readChar() // consume closing quote
	}
	return raw, val
}

func unescape(ch byte) byte {
	switch ch {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	case '0':
		return 0
	default:
		return ch
	}
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
