package entity

type Subject string

const (
	SubjectBiology     Subject = "BIOLOGY II"
	SubjectChemistry   Subject = "CHEMISTRY II"
	SubjectPhysics     Subject = "PHYSICS II"
	SubjectMathematics Subject = "MATHEMATICS II"
	SubjectAgriculture Subject = "AGRICULTURE II"
)

// Subjects lists every allowed subject, in the order menus show them.
var Subjects = []Subject{
	SubjectBiology,
	SubjectChemistry,
	SubjectPhysics,
	SubjectMathematics,
	SubjectAgriculture,
}

// ParseSubject matches s exactly (case and spacing included) against the allowed subjects.
func ParseSubject(s string) (Subject, bool) {
	for _, sub := range Subjects {
		if string(sub) == s {
			return sub, true
		}
	}
	return "", false
}
