// Package naming provides the identifier mapping shared by every emitter.
//
// All generated identifiers derived from document names go through
// ToCompoundIdentifier so the three artifacts agree on spelling. The
// remaining helpers adjust the first rune or escape collisions with Go
// keywords and generator-owned names.
package naming
