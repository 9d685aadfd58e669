package registry

import "reflect"

// sameFuncPointer reports whether a and b are the same underlying function
// value. Used only to make re-registering the identical factory a no-op
// instead of a spurious DuplicateRegistration, e.g. when a package's
// registration helper runs more than once against the same Registry.
func sameFuncPointer(a, b interface{}) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
