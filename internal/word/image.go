package word

import "fmt"

// InitialLoadAddr is the base address of the first code-image word.
const InitialLoadAddr = 100

// Image is an ordered sequence of machine words with append-at-tail and
// index-ordered iteration; both the code image and the data image are one
// of these.
type Image struct {
	words []Word
}

func (img *Image) Append(w Word) {
	img.words = append(img.words, w)
}

func (img *Image) Len() int {
	return len(img.words)
}

func (img *Image) At(i int) Word {
	return img.words[i]
}

func (img *Image) Set(i int, w Word) {
	img.words[i] = w
}

// All returns the words in emission order. Callers must not retain the
// slice past the next Append.
func (img *Image) All() []Word {
	return img.words
}

// ExternRef is one textual appearance of an external symbol as a direct
// operand: the symbol name and the code-image address of the word that
// carries the reference.
type ExternRef struct {
	Name    string
	Address int
}

// ExternRefs is the ordered list of external references, append-at-tail so
// iteration yields source-appearance order (see SPEC_FULL.md §9 note 2).
type ExternRefs struct {
	refs []ExternRef
}

func (e *ExternRefs) Append(name string, address int) {
	e.refs = append(e.refs, ExternRef{Name: name, Address: address})
}

func (e *ExternRefs) All() []ExternRef {
	return e.refs
}

func (e *ExternRefs) Len() int {
	return len(e.refs)
}

// FormatWordHex renders w as exactly 6 lowercase hex digits of its low
// 24 bits.
func FormatWordHex(w Word) string {
	return fmt.Sprintf("%06x", uint32(w)&0xffffff)
}

// FormatAddressDecimal renders a as exactly 7 decimal digits, zero-padded,
// truncating high digits on overflow (mod 10^7).
func FormatAddressDecimal(a int) string {
	return fmt.Sprintf("%07d", a%10000000)
}
