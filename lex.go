package distexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Num is the value of a number token.
	Num float64
	// Op is the symbol of an operator token.
	Op Op
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	var text string
	switch t.Kind {
	case TokenNum:
		text = strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenOp:
		text = t.Op.String()
	}
	return t.Kind.String() + ":" + text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a non-negative decimal number.
	TokenNum
	// TokenOp is an operator.
	TokenOp
)

func (k TokenKind) String() string {
	switch k {
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/~_"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. Once the input is exhausted, the
// result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
			}
			return Token{}, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.Pos); err != nil {
				return tok, err
			}
			v, err := strconv.ParseFloat(l.buf.String(), 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				// scanNum only accepts text ParseFloat understands.
				panic("distexpr: invalid number: " + l.buf.String() + " (" + err.Error() + ")")
			}
			// Out of range literals keep the ±Inf or 0 ParseFloat gives.
			tok.Kind = TokenNum
			tok.Num = v
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Kind = TokenOp
			tok.Op = Op(r)
			return tok, nil
		default:
			return tok, &ParseError{
				Col:  tok.Pos,
				Text: string(r),
				Msg:  "Unknown character: " + string(r),
			}
		}
	}
}

// scanNum scans a run of digits containing at most one decimal point into
// l.buf. pos is the column where the number starts.
func (l *lexer) scanNum(pos int) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			l.buf.WriteRune(r)
			if dot {
				return l.malformed(pos)
			}
			dot = true
			continue
		}
		if r < '0' || '9' < r {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		dig = true
	}
	if !dig {
		return l.malformed(pos)
	}
	return nil
}

func (l *lexer) malformed(pos int) error {
	return &ParseError{
		Col:  pos,
		Text: l.buf.String(),
		Msg:  "Malformed number: " + l.buf.String(),
	}
}

// Lex scans all tokens from src. The first error stops scanning.
func Lex(src io.RuneScanner) ([]Token, error) {
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// Tokenize scans an expression into tokens. Empty or blank input gives no
// tokens and no error.
func Tokenize(expr string) ([]Token, error) {
	return Lex(strings.NewReader(expr))
}
