package suffixtree

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/seqeron/go-suffixtree/layout"
)

// The logical hash identifies the tree by content and shape only. Two trees
// over the same text hash identically whatever their backend or node format,
// because the hashed events carry nothing format dependent: text length and
// content hash up front, then a canonical-order preorder walk emitting edge
// spans for internal nodes and suffix positions for leaves. Events are
// canonical CBOR, so the byte stream fed to sha256 is unique for a given
// logical tree.

var canonicalEnc cbor.EncMode

func init() {
	var err error
	canonicalEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

type hashEvent struct {
	Kind     uint8  `cbor:"k"`
	Children int    `cbor:"c,omitempty"`
	EdgeLen  int    `cbor:"e,omitempty"`
	Pos      int    `cbor:"p,omitempty"`
	TextLen  int    `cbor:"n,omitempty"`
	TextHash []byte `cbor:"h,omitempty"`
}

const (
	hashEventText     uint8 = 1
	hashEventInternal uint8 = 2
	hashEventLeaf     uint8 = 3
)

// CalculateLogicalHash returns the hex sha256 of the tree's logical content.
func (t *Tree) CalculateLogicalHash() (string, error) {
	if err := t.ensureQueryable(); err != nil {
		return "", err
	}

	h := sha256.New()
	emit := func(ev hashEvent) error {
		b, err := canonicalEnc.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encoding hash event: %w", err)
		}
		h.Write(b)
		return nil
	}

	text := t.text.Bytes()
	sum := sha256.Sum256(text)
	if err := emit(hashEvent{Kind: hashEventText, TextLen: len(text), TextHash: sum[:]}); err != nil {
		return "", err
	}

	n := t.text.Len()
	root, err := t.readNode(t.hdr.Root)
	if err != nil {
		return "", err
	}
	stack := []layout.NodeRec{root}
	for len(stack) > 0 {
		rec := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if rec.IsLeaf() {
			pos := t.leafSuffix(rec)
			if pos == n {
				continue
			}
			if err := emit(hashEvent{Kind: hashEventLeaf, Pos: pos}); err != nil {
				return "", err
			}
			continue
		}

		entries, err := t.children(rec)
		if err != nil {
			return "", err
		}
		if err := emit(hashEvent{
			Kind:     hashEventInternal,
			Children: len(entries),
			EdgeLen:  t.edgeLen(rec),
		}); err != nil {
			return "", err
		}
		// Reverse push keeps the pop order canonical.
		for i := len(entries) - 1; i >= 0; i-- {
			crec, err := t.readNode(entries[i].Child)
			if err != nil {
				return "", err
			}
			stack = append(stack, crec)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
