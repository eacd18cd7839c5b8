package htmltokenize

// mode is the tokenizer's internal FSM state. These mirror the named
// states of the WHATWG HTML5 tokenizer, narrowed to what the classifier
// actually observes.
type mode int

const (
	modeData mode = iota
	modeTagOpen
	modeEndTagOpen
	modeTagName
	modeBeforeAttrName
	modeAttrName
	modeAfterAttrName
	modeBeforeAttrValue
	modeAttrValueUnquoted
	modeAttrValueSingleQuoted
	modeAttrValueDoubleQuoted
	modeAttrValueBackQuoted
	modeSelfClosingStartTag
	modeMarkupDeclarationOpen
	modeCommentStart
	modeComment
	modeBogusComment
	modeDoctype
	modeCDATA
	modeRawText
	modeDone
)

// rawTextTags are the elements whose body is never re-entered as markup.
// The attacker payload inside them is only visible once the matching end
// tag appears.
var rawTextTags = map[string]bool{
	"script": true,
	"style":  true,
}
