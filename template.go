package cfndot

import (
	"strings"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

const (
	// pseudoPrefix marks pseudo parameters and other intrinsic values which
	// are not declared resources, e.g. AWS::Region
	pseudoPrefix = "AWS::"

	// cdkPathKey is the metadata entry where the CDK records the construct
	// path of a synthesized resource
	cdkPathKey = "aws:cdk:path"

	// resourceMarker is the construct path segment the CDK inserts for the
	// L1 resource itself
	resourceMarker = "Resource"

	unknownType = "UnknownType"

	refKey    = "Ref"
	getAttKey = "Fn::GetAtt"

	dependsOnLabel = "DependsOn"
)

// ParseTemplate decodes one template document and adds every node annotation
// and dependency edge it declares to g. Documents which do not decode, or
// decode to null, are reported on log and contribute nothing.
func ParseTemplate(log *slog.Logger, source string, data []byte, g *Graph) {
	var doc Value
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Warn("skipping template that does not parse", slog.String("source", source), slog.Any("err", err))
		return
	}

	if doc.IsNull() {
		log.Warn("skipping empty template", slog.String("source", source))
		return
	}

	resources, ok := doc.Get("Resources")
	if !ok {
		return
	}

	for _, res := range resources.Map {
		parseResource(res.Key, res.Value, g)
	}
}

func parseResource(logicalID string, res Value, g *Graph) {
	typ := unknownType
	if t, ok := res.Get("Type"); ok && t.Kind == KindString {
		typ = t.Str
	}
	g.Annotate(logicalID, friendlyName(logicalID, res)+"\n("+typ+")")

	if props, ok := res.Get("Properties"); ok {
		for _, dep := range findRefs(props) {
			if strings.HasPrefix(dep.Target, pseudoPrefix) {
				continue
			}
			g.AddEdge(logicalID, dep)
		}
	}

	dependsOn, ok := res.Get("DependsOn")
	if !ok {
		return
	}
	switch dependsOn.Kind {
	case KindString:
		// the single-name shorthand of DependsOn
		g.AddEdge(logicalID, Dep{Target: dependsOn.Str, Label: dependsOnLabel})
	case KindSequence:
		for _, name := range dependsOn.Seq {
			if name.Kind == KindString {
				g.AddEdge(logicalID, Dep{Target: name.Str, Label: dependsOnLabel})
			}
		}
	}
}

// friendlyName derives the display name of a resource from its CDK construct
// path when it carries one, falling back to the logical id.
func friendlyName(logicalID string, res Value) string {
	md, ok := res.Get("Metadata")
	if !ok {
		return logicalID
	}
	path, ok := md.Get(cdkPathKey)
	if !ok || path.Kind != KindString {
		return logicalID
	}
	if name := simplifyPath(path.Str); name != "" {
		return name
	}
	return logicalID
}

// simplifyPath drops the leading stack segment and every synthesis marker
// segment from a construct path.
func simplifyPath(path string) string {
	segments := strings.Split(path, "/")[1:]
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg != resourceMarker {
			kept = append(kept, seg)
		}
	}
	return strings.Join(kept, "/")
}

// DetectReference reports whether v has the shape of an intrinsic reference.
// A mapping whose single key is Ref names a resource directly; a mapping
// whose single key is Fn::GetAtt with a [logicalId, attribute] argument list
// names an attribute of one. The returned kind is "Ref" for the former and
// the attribute name for the latter. DetectReference does not recurse; any
// other shape yields no match.
func DetectReference(v Value) (target, kind string, ok bool) {
	if v.Kind != KindMapping || len(v.Map) != 1 {
		return "", "", false
	}

	entry := v.Map[0]
	switch entry.Key {
	case refKey:
		if entry.Value.Kind == KindString {
			return entry.Value.Str, refKey, true
		}
	case getAttKey:
		args := entry.Value
		if args.Kind == KindSequence && len(args.Seq) == 2 &&
			args.Seq[0].Kind == KindString && args.Seq[1].Kind == KindString {
			return args.Seq[0].Str, args.Seq[1].Str, true
		}
	}

	return "", "", false
}

// findRefs walks every property value and collects the references embedded
// anywhere inside it. Each edge is labeled with the outermost property name,
// however deeply the reference was nested.
func findRefs(props Value) []Dep {
	var deps []Dep
	for _, e := range props.Map {
		deps = append(deps, refsIn(e.Key, e.Value)...)
	}
	return deps
}

func refsIn(property string, v Value) []Dep {
	switch v.Kind {
	case KindSequence:
		var deps []Dep
		for _, elem := range v.Seq {
			deps = append(deps, refsIn(property, elem)...)
		}
		return deps
	case KindMapping:
		if target, _, ok := DetectReference(v); ok {
			// a reference is a leaf, nothing below it is scanned
			return []Dep{{Target: target, Label: property}}
		}
		var deps []Dep
		for _, e := range v.Map {
			deps = append(deps, refsIn(property, e.Value)...)
		}
		return deps
	default:
		return nil
	}
}
