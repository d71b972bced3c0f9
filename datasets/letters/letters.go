// Package letters implements the handwritten Amharic letters dataset: the
// label enumeration and the line-oriented corpus format
package letters

// Classes is the number of known letters
const Classes = 5

// Invalid is the display name of labels outside the known letters
const Invalid = "Invalid"

var names = [Classes]string{"ሀ", "ለ", "ሐ", "መ", "ሠ"}

// Name returns the letter of a label, or Invalid
func Name(label int) string {
	if label < 0 || label >= Classes {
		return Invalid
	}
	return names[label]
}

// Names returns the display name of each label
func Names(labels []int) []string {
	var o = make([]string, len(labels))
	for i, l := range labels {
		o[i] = Name(l)
	}
	return o
}
