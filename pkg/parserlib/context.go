package parserlib

// Context is the state of a single parse: the input, the cursor and,
// optionally, a callstack of every parser invocation. A Context must not
// be shared between goroutines.
type Context struct {
	input string

	// position we're at; 0 <= pos <= len(input)
	pos     int
	lastPos int

	// the most recent failure; what a top-level ParseError reports
	failPos  int
	failDesc string

	callstack *Callstack
}

func NewContext(input string) *Context {
	return &Context{input: input}
}

// NewContextWithCallstack returns a Context that records a Callstack
// entry for every parser start, success and failure.
func NewContextWithCallstack(input string) *Context {
	return &Context{
		input:     input,
		callstack: &Callstack{},
	}
}

func (ctx *Context) Input() string { return ctx.input }

func (ctx *Context) Pos() int { return ctx.pos }

// LastPos is the cursor position before the most recent move.
func (ctx *Context) LastPos() int { return ctx.lastPos }

// SetPos moves the cursor. Primitives call it to advance past a match;
// backtracking combinators call it to restore a saved position.
func (ctx *Context) SetPos(pos int) {
	if pos < 0 || pos > len(ctx.input) {
		panic(invalidArgumentf("cursor %d out of range [0, %d]", pos, len(ctx.input)))
	}
	ctx.lastPos = ctx.pos
	ctx.pos = pos
}

// Advance moves the cursor n bytes forward.
func (ctx *Context) Advance(n int) {
	ctx.SetPos(ctx.pos + n)
}

// Read returns up to n bytes starting at the cursor, without advancing.
func (ctx *Context) Read(n int) string {
	end := ctx.pos + n
	if end > len(ctx.input) {
		end = len(ctx.input)
	}
	return ctx.input[ctx.pos:end]
}

// ReadAll returns everything from the cursor to the end of the input.
func (ctx *Context) ReadAll() string {
	return ctx.input[ctx.pos:]
}

func (ctx *Context) EOF() bool {
	return ctx.pos >= len(ctx.input)
}

// Index returns the line and column of the cursor.
func (ctx *Context) Index() (Index, error) {
	return CalculateIndex(ctx.input, ctx.pos)
}

// IndexAt returns the line and column of an arbitrary offset.
func (ctx *Context) IndexAt(pos int) (Index, error) {
	return CalculateIndex(ctx.input, pos)
}

// Callstack is nil unless the Context was created with one.
func (ctx *Context) Callstack() *Callstack {
	return ctx.callstack
}

func (ctx *Context) startParse(p *Parser) {
	if ctx.callstack != nil {
		ctx.callstack.start(p.desc, ctx.pos)
	}
}

func (ctx *Context) successParse(p *Parser, result interface{}) {
	if ctx.callstack != nil {
		ctx.callstack.success(p.desc, ctx.pos, result)
	}
}

func (ctx *Context) recordFailure(p *Parser) {
	ctx.failPos = ctx.pos
	ctx.failDesc = p.desc
}

func (ctx *Context) failureParse(p *Parser) {
	if ctx.callstack != nil {
		ctx.callstack.failure(p.desc, ctx.pos)
	}
}
