package pattern

// MarkerTypeName is the capability marker: a type may participate in
// declaration codegen only when its immediate base carries this name.
const MarkerTypeName = "ImHexType"

// HasDirectMarkerBase reports whether the type's direct base is the recognized
// marker. The check is deliberately one level deep, not an ancestry walk:
// a type whose parent is itself derived from the marker is rejected.
func HasDirectMarkerBase(d TypeDescriptor) bool {
	base, ok := d.DirectBaseName()
	return ok && base == MarkerTypeName
}

// ValidateOuterType gates the declared type itself.
func ValidateOuterType(d TypeDescriptor) error {
	if !HasDirectMarkerBase(d) {
		return Errorf(KindCapability, "class type must extend from %s", MarkerTypeName)
	}
	return nil
}

// ValidateMemberType gates one member's type, citing the member by name.
func ValidateMemberType(d TypeDescriptor, memberName string) error {
	if !HasDirectMarkerBase(d) {
		return Errorf(KindCapability, "member %q must extend from %s", memberName, MarkerTypeName)
	}
	return nil
}
