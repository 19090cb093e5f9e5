package ddic

import "errors"

// ErrUnresolvedSpecifiedClass is the ConfigurationError Construct returns,
// wrapped together with the offending name, when a caller-supplied
// specified-class name cannot be resolved against the catalog (§4.1,
// "fail with ConfigurationError"). The catalog's own ErrUnresolvedType is
// not part of the returned error chain.
var ErrUnresolvedSpecifiedClass = errors.New("unresolved specified class")
