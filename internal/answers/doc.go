// Package answers provides the immutable answer snapshot the routing engine
// reads from. Values are held as cty.Value so that schema literals, YAML
// fixtures and values recorded by the request layer compare the same way.
package answers
