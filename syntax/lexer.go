package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a smallest meaningful unit of clause text.
type Token struct {
	Kind TokenKind
	Val  string
	Line int

	// Column is the 0-based offset of the first rune of Val in the line, counted in runes.
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("<%s %s>", t.Kind, t.Val)
}

// TokenKind is a type of Token.
type TokenKind byte

const (
	// TokenBlank represents an empty or whitespace-only token.
	TokenBlank TokenKind = iota

	// TokenIdent represents a run of letters and digits.
	TokenIdent

	// TokenPunct represents a single punctuation character.
	TokenPunct

	// TokenQuoted represents an apostrophe-delimited constant.
	TokenQuoted

	// TokenComment represents a comment running to the end of the line.
	TokenComment

	// TokenOperator represents the clause implication operator.
	TokenOperator

	tokenKindLen
)

func (k TokenKind) String() string {
	if k >= tokenKindLen {
		return fmt.Sprintf("unknown(%d)", k)
	}
	return [tokenKindLen]string{
		TokenBlank:    "blank",
		TokenIdent:    "ident",
		TokenPunct:    "punct",
		TokenQuoted:   "quoted",
		TokenComment:  "comment",
		TokenOperator: "operator",
	}[k]
}

const (
	apostrophe = '\''
	percent    = '%'
	colon      = ':'
	hyphen     = '-'

	// If is the clause implication operator.
	If = ":-"
)

// Mode governs how the next character of a line is classified.
type Mode byte

const (
	// ModeCode is the initial mode of every line.
	ModeCode Mode = iota

	// ModeConstant is the mode inside a quoted constant.
	ModeConstant

	// ModeComment is the mode after a percent sign.
	ModeComment
)

func (m Mode) String() string {
	switch m {
	case ModeCode:
		return "code"
	case ModeConstant:
		return "constant"
	case ModeComment:
		return "comment"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// IllegalLexerStateError is the panic value of a lexer reaching a mode it can't handle.
// It signals a bug in the lexer, not bad input.
type IllegalLexerStateError struct {
	Mode Mode
	Char rune
	Pos  int
	Line int
	Text string
}

func (e IllegalLexerStateError) Error() string {
	return fmt.Sprintf("illegal lexer state %s while reading %q at position %d of line %d: %q", e.Mode, e.Char, e.Pos, e.Line, e.Text)
}

// Classify returns the kind of token the text stands for, judging by its shape.
func Classify(text string) TokenKind {
	switch {
	case strings.TrimSpace(text) == "":
		return TokenBlank
	case text[0] == apostrophe:
		return TokenQuoted
	case text[0] == percent:
		return TokenComment
	case text == If:
		return TokenOperator
	}
	rs := []rune(text)
	if len(rs) == 1 && !isIdentRune(rs[0]) {
		return TokenPunct
	}
	return TokenIdent
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lineLexer holds the state of a single line. It never outlives one call of Tokenize.
type lineLexer struct {
	line   []rune
	number int
	mode   Mode
	buf    strings.Builder
	start  int
	tokens []Token
}

func (l *lineLexer) emit(val string, column int) {
	l.tokens = append(l.tokens, Token{Kind: Classify(val), Val: val, Line: l.number, Column: column})
}

func (l *lineLexer) write(r rune, pos int) {
	if l.buf.Len() == 0 {
		l.start = pos
	}
	_, _ = l.buf.WriteRune(r)
}

// flush emits the buffer. An empty buffer becomes a blank token at pos.
func (l *lineLexer) flush(pos int) {
	column := pos
	if l.buf.Len() > 0 {
		column = l.start
	}
	l.emit(l.buf.String(), column)
	l.buf.Reset()
}

// step consumes the rune at pos and returns the position of the next rune to read.
func (l *lineLexer) step(pos int) int {
	r := l.line[pos]
	switch {
	case l.mode == ModeCode && isIdentRune(r):
		l.write(r, pos)
	case l.mode == ModeCode && r == apostrophe:
		l.flush(pos)
		l.write(r, pos)
		l.mode = ModeConstant
	case l.mode == ModeConstant && r == apostrophe:
		l.write(r, pos)
		l.flush(pos)
		l.mode = ModeCode
	case l.mode == ModeCode && r == percent:
		l.flush(pos)
		l.write(r, pos)
		l.mode = ModeComment
	case l.mode == ModeCode:
		l.flush(pos)
		if r == colon && pos+1 < len(l.line) && l.line[pos+1] == hyphen {
			l.emit(If, pos)
			return pos + 2
		}
		l.emit(string(r), pos)
	case l.mode == ModeConstant, l.mode == ModeComment:
		l.write(r, pos)
	default:
		panic(IllegalLexerStateError{
			Mode: l.mode,
			Char: r,
			Pos:  pos,
			Line: l.number,
			Text: string(l.line),
		})
	}
	return pos + 1
}

// Tokenize turns a single line into tokens, blanks and comments included.
// Every line starts in ModeCode and nothing carries over to the next line,
// so a quoted constant left open at the end of the line ends there.
func Tokenize(line string, lineNumber int) []Token {
	if line == "" {
		return nil
	}
	l := lineLexer{line: []rune(line), number: lineNumber, mode: ModeCode}
	for pos := 0; pos < len(l.line); {
		pos = l.step(pos)
	}
	if l.buf.Len() > 0 {
		l.flush(len(l.line))
	}
	return l.tokens
}

// Adjacent checks if next starts on the same line right where prev ends.
func Adjacent(prev, next Token) bool {
	return prev.Line == next.Line && prev.Column+utf8.RuneCountInString(prev.Val) == next.Column
}

// RemoveBlanksAndComments returns the tokens a parser is interested in.
func RemoveBlanksAndComments(tokens []Token) []Token {
	ret := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case TokenBlank, TokenComment:
			continue
		default:
			ret = append(ret, t)
		}
	}
	return ret
}

// ReadLines calls fn for every line of r with its 1-based number.
// Line terminators, \n or \r\n, are not part of the line. Lines have no length limit.
func ReadLines(r io.Reader, fn func(line string, number int)) error {
	br := bufio.NewReader(r)
	for number := 1; ; number++ {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			fn(line, number)
		}
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return fmt.Errorf("read line %d: %w", number, err)
		}
	}
}

// TokenizeReader tokenizes r line by line with 1-based line numbers and drops blanks and comments.
func TokenizeReader(r io.Reader) ([]Token, error) {
	var ret []Token
	if err := ReadLines(r, func(line string, number int) {
		ret = append(ret, RemoveBlanksAndComments(Tokenize(line, number))...)
	}); err != nil {
		return nil, err
	}
	return ret, nil
}

// TokenizeString is TokenizeReader over a string. Reading a string never fails.
func TokenizeString(s string) []Token {
	var ret []Token
	_ = ReadLines(strings.NewReader(s), func(line string, number int) {
		ret = append(ret, RemoveBlanksAndComments(Tokenize(line, number))...)
	})
	return ret
}
