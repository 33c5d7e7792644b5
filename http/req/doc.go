/*
Package req parses the query parameters of an HTTP request into a pointer to a struct.

The struct's "schema" tags match query parameter keys to fields;
its "validate" tags set the rules the decoded values must meet.
Besides the rules go-playground/validator ships with,
"abspath" requires a string to be an absolute URL path, as navigation targets are.

The errors decoding and validation produce are translated to the sentinel errors
of the wayfinder package, so handlers check them with errors.Is.
Values breaking the rules return as ValidationErrors, which unwrap to wayfinder.ErrNotValid.
*/
package req
