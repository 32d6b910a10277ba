package evidence

import (
	"context"

	"github.com/rakshak-app/rakshak/internal/risk"
)

const (
	hexAlphabet = "0123456789abcdef"
	cidAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	ledgerHandleDigits = 64
	contentHandleChars = 44
)

// SyntheticLedger emits handles shaped like transaction hashes ("0x" + 64
// hex chars) without any backing chain. It stands in for the real ledger in
// the simulated deployment and in tests.
type SyntheticLedger struct {
	src risk.Source
}

// NewSyntheticLedger builds a ledger drawing handle bytes from src.
func NewSyntheticLedger(src risk.Source) *SyntheticLedger {
	if src == nil {
		src = risk.DefaultSource()
	}
	return &SyntheticLedger{src: src}
}

func (l *SyntheticLedger) Append(_ context.Context, _ Entry) (string, error) {
	out := make([]byte, 0, 2+ledgerHandleDigits)
	out = append(out, '0', 'x')
	for i := 0; i < ledgerHandleDigits; i++ {
		out = append(out, hexAlphabet[l.src.Intn(len(hexAlphabet))])
	}
	return string(out), nil
}

// SyntheticStore emits handles shaped like content addresses ("Qm" + 44
// base36 chars) without persisting anything.
type SyntheticStore struct {
	src risk.Source
}

// NewSyntheticStore builds a content store drawing handle bytes from src.
func NewSyntheticStore(src risk.Source) *SyntheticStore {
	if src == nil {
		src = risk.DefaultSource()
	}
	return &SyntheticStore{src: src}
}

func (s *SyntheticStore) Put(_ context.Context, _ Entry) (string, error) {
	out := make([]byte, 0, 2+contentHandleChars)
	out = append(out, 'Q', 'm')
	for i := 0; i < contentHandleChars; i++ {
		out = append(out, cidAlphabet[s.src.Intn(len(cidAlphabet))])
	}
	return string(out), nil
}
