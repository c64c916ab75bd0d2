// Package cfndot builds dependency graphs of CloudFormation templates.
//
// It walks the Resources section of one or more templates (YAML or JSON),
// collects edges from embedded Ref and Fn::GetAtt intrinsics and from explicit
// DependsOn declarations, and represents the result in [Graphviz DOT]. The DOT
// output can be piped to dot or [graph-easy] to generate SVG, PNG or ASCII
// output.
//
// Templates synthesized by the CDK get friendlier node labels: the construct
// path recorded in resource metadata replaces the mangled logical id.
//
// [Graphviz DOT]: https://graphviz.org/doc/info/lang.html
// [graph-easy]: https://metacpan.org/pod/Graph::Easy
package cfndot
