package odr2lanelet2

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

const (
	DEFAULT_GENERATOR = "odr2lanelet2"
	nearSpaces        = "[]"
)

// WriterOptions controls document root of produced OSM file
type WriterOptions struct {
	Generator        string
	GeoReference     string
	EmitGeoReference bool
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatIDList renders ids as '[a,b]'
func formatIDList(ids []string) string {
	return "[" + strings.Join(ids, ",") + "]"
}

func addTag(parent *etree.Element, k, v string) {
	tag := parent.CreateElement("tag")
	tag.CreateAttr("k", k)
	tag.CreateAttr("v", v)
}

func addMember(parent *etree.Element, ref, role, memberType string) {
	member := parent.CreateElement("member")
	member.CreateAttr("ref", ref)
	if role != "" {
		member.CreateAttr("role", role)
	}
	member.CreateAttr("type", memberType)
}

func createElement(parent *etree.Element, name, id string) *etree.Element {
	el := parent.CreateElement(name)
	el.CreateAttr("id", id)
	return el
}

func nodeElement(parent *etree.Element, node *Node) {
	el := createElement(parent, "node", node.ID)
	el.CreateAttr("lat", formatCoordinate(node.Geo.Lat))
	el.CreateAttr("lon", formatCoordinate(node.Geo.Lon))
	el.CreateAttr("version", "1")
	el.CreateAttr("visible", "true")
	addTag(el, "ele", "0.0")
}

func wayElement(parent *etree.Element, way *Way) {
	el := createElement(parent, "way", way.ID)
	el.CreateAttr("version", "1")
	el.CreateAttr("visible", "true")
	for _, node := range way.Nodes {
		nd := el.CreateElement("nd")
		nd.CreateAttr("ref", node.ID)
	}
	addTag(el, "type", wayType)
	addTag(el, "subtype", waySubtype)
}

func relationElement(parent *etree.Element, relation *Relation) {
	el := createElement(parent, "relation", relation.ID)
	el.CreateAttr("version", "1")
	el.CreateAttr("visible", "true")
	addMember(el, relation.Left.ID, "left", "way")
	addMember(el, relation.Right.ID, "right", "way")
	addTag(el, "cad_id", relation.SourceLaneletID)
	addTag(el, "direction", "ONE_WAY")
	addTag(el, "level", "0")
	addTag(el, "location", "private")
	addTag(el, "participant:vehicle", "yes")
	addTag(el, "road_type", "road")
	addTag(el, "subtype", "road")
	addTag(el, "type", "lanelet")
	addTag(el, "from_cad_id", formatIDList(relation.Predecessors))
	addTag(el, "to_cad_id", formatIDList(relation.Successors))
	addTag(el, "near_spaces", nearSpaces)
	addTag(el, "turn_direction", relation.TurnDirection.String())
}

func regulationElement(parent *etree.Element, regulation *SpeedRegulation) {
	el := createElement(parent, "relation", regulation.ID)
	el.CreateAttr("version", "1")
	el.CreateAttr("visible", "true")
	addMember(el, regulation.TargetRelationID, "", "relation")
	addTag(el, "type", "regulatory_element")
	addTag(el, "subtype", "digital_speed_limit")
	addTag(el, "participant:vehicle", "yes")
	addTag(el, "limit", regulation.Limit)
}

// BuildDocument returns OSM document for given graph: nodes, ways, then each lanelet followed by its speed regulation
func BuildDocument(graph *Graph, opts WriterOptions) *etree.Document {
	generator := opts.Generator
	if generator == "" {
		generator = DEFAULT_GENERATOR
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("osm")
	root.CreateAttr("version", "0.6")
	root.CreateAttr("upload", "true")
	root.CreateAttr("generator", generator)
	if opts.EmitGeoReference && opts.GeoReference != "" {
		root.CreateElement("geoReference").SetText(opts.GeoReference)
	}
	for _, node := range graph.Nodes {
		nodeElement(root, node)
	}
	for _, way := range graph.Ways {
		wayElement(root, way)
	}
	for i, relation := range graph.Relations {
		relationElement(root, relation)
		if i < len(graph.Regulations) {
			regulationElement(root, graph.Regulations[i])
		}
	}
	doc.Indent(2)
	return doc
}

// WriteOSM writes OSM document for given graph
func WriteOSM(w io.Writer, graph *Graph, opts WriterOptions) error {
	_, err := BuildDocument(graph, opts).WriteTo(w)
	if err != nil {
		return errors.Wrap(err, "Can't write OSM document")
	}
	return nil
}

// WriteOSMFile renders whole document first so failed rendering never leaves partial file
func WriteOSMFile(fname string, graph *Graph, opts WriterOptions) error {
	var buf bytes.Buffer
	err := WriteOSM(&buf, graph, opts)
	if err != nil {
		return err
	}
	err = os.WriteFile(fname, buf.Bytes(), 0644)
	if err != nil {
		return errors.Wrapf(err, "Can't save file '%s'", fname)
	}
	return nil
}
