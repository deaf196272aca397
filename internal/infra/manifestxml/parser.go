package manifestxml

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

const (
	xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
	rootBegin = "<manifest>\n"
	rootEnd   = "</manifest>\n"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(text string) ([]domain.Project, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	defaults := readDefaults(doc)

	var projects []domain.Project
	for _, node := range doc.FindElements("//project") {
		project, err := readProject(node, defaults)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func (p *Parser) Compose(projects []domain.Project) (string, error) {
	var xml strings.Builder
	xml.WriteString(xmlHeader)
	xml.WriteString(rootBegin)
	for _, project := range projects {
		writeProject(&xml, project)
	}
	xml.WriteString(rootEnd)
	return xml.String(), nil
}

func readDefaults(doc *etree.Document) domain.Defaults {
	defaults := domain.Defaults{}
	if node := doc.FindElement("//default"); node != nil {
		defaults.Revision = node.SelectAttrValue("revision", "")
		defaults.URI = node.SelectAttrValue("uri", "")
	}
	return defaults.WithFallbacks()
}

func readProject(node *etree.Element, defaults domain.Defaults) (domain.Project, error) {
	name := node.SelectAttrValue("name", "")
	if name == "" {
		return domain.Project{}, ErrMissingProjectName
	}
	path := node.SelectAttrValue("path", "")
	if path == "" {
		return domain.Project{}, ErrMissingProjectPath
	}
	revision := node.SelectAttrValue("revision", defaults.Revision)
	uri := node.SelectAttrValue("uri", defaults.URI)

	project := domain.NewProject(uri, name, revision, path)

	var actions []domain.Action
	for _, child := range node.ChildElements() {
		kind := domain.ActionKind(child.Tag)
		switch {
		case kind.IsFileAction():
			src := child.SelectAttrValue("src", "")
			dest := child.SelectAttrValue("dest", "")
			if src == "" || dest == "" {
				return domain.Project{}, fmt.Errorf("<%s>: %w", child.Tag, ErrMissingActionPaths)
			}
			actions = append(actions, domain.Action{Kind: kind, Src: src, Dest: dest})
		case kind == domain.ActionDeleteProject:
			actions = append(actions, domain.Action{Kind: kind})
		default:
			slog.Warn("ignoring unknown manifest action", "action", child.Tag, "project", name)
		}
	}
	project.Actions = domain.NormalizeActions(actions)

	return project, nil
}

func writeProject(xml *strings.Builder, project domain.Project) {
	if len(project.Actions) == 0 {
		fmt.Fprintf(xml, "    <project uri=%q name=%q path=%q revision=%q/>\n",
			project.URI, project.Name, project.Path, project.Revision)
		return
	}

	fmt.Fprintf(xml, "    <project uri=%q name=%q path=%q revision=%q>\n",
		project.URI, project.Name, project.Path, project.Revision)
	for _, action := range project.Actions {
		if action.Kind == domain.ActionDeleteProject {
			xml.WriteString("        <delete-project/>\n")
			continue
		}
		fmt.Fprintf(xml, "        <%s src=%q dest=%q/>\n", action.Kind, action.Src, action.Dest)
	}
	xml.WriteString("    </project>\n")
}
