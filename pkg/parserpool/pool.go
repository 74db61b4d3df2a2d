// Package parserpool provides a pool of gnparser instances for concurrent
// name parsing. Parsing is computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string. It is safe for concurrent
	// use and blocks when all parsers are busy.
	Parse(nameString string) parsed.Parsed

	// Code returns the nomenclatural code parsers of the pool follow.
	Code() nomcode.Code

	// Close releases parsers. The pool must not be used afterwards.
	Close()
}

type pool struct {
	ch   chan gnparser.GNparser
	code nomcode.Code
}

// NewPool creates a pool of jobsNum parsers for the given code.
// If jobsNum is 0, it defaults to runtime.NumCPU(). IPNI names use
// nomcode.Botanical.
func NewPool(jobsNum int, code nomcode.Code) Pool {
	if jobsNum <= 0 {
		jobsNum = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(code),
		gnparser.OptWithDetails(true),
	)

	return &pool{
		ch:   gnparser.NewPool(cfg, jobsNum),
		code: code,
	}
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	defer func() { p.ch <- parser }()
	return parser.ParseName(nameString)
}

func (p *pool) Code() nomcode.Code {
	return p.code
}

func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}
