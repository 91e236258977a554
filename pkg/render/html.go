package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/castlegate/oscalcat/pkg/catalog"
	"github.com/castlegate/oscalcat/pkg/xref"
)

// HTML generates the self-contained catalog reference document: embedded
// styling, client-side search/filter script, compliance dashboard, family
// navigation, and every group's and top-level control's rendered block.
// Output depends only on the catalog snapshot, so repeated calls on an
// unmutated catalog produce identical bytes.
func HTML(cat *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>OSCAL Control Catalog Reference</title>\n")
	b.WriteString(catalogHTMLStyles())
	b.WriteString(catalogHTMLScript())
	b.WriteString("</head>\n<body>\n")

	b.WriteString("<h1>Control Catalog Reference</h1>\n")
	title := cat.Metadata.Title
	if title == "" {
		title = "Unnamed Catalog"
	}
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(title))

	writeDashboard(&b, cat)
	writeFilters(&b, cat)
	writeTOC(&b, cat)

	// Main content
	b.WriteString("<div id=\"mainContent\" class=\"main-content expanded\">\n")
	if len(cat.Groups) > 0 {
		b.WriteString("<h3>Control Groups</h3>\n")
		for i := range cat.Groups {
			writeGroup(&b, &cat.Groups[i], cat)
		}
	}
	b.WriteString("<h3>Controls</h3>\n")
	writeControls(&b, cat.Controls, cat)
	b.WriteString("</div>\n")

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeDashboard(b *strings.Builder, cat *catalog.Catalog) {
	summary := Summarize(cat)
	b.WriteString("<div class=\"compliance-dashboard\">\n<h2>Compliance Dashboard</h2>\n")
	fmt.Fprintf(b, "<p>Total Controls: %d</p>\n", cat.TotalControls())
	fmt.Fprintf(b, "<p>Implemented: %d</p>\n", summary.Implemented)
	fmt.Fprintf(b, "<p>In Progress: %d</p>\n", summary.InProgress)
	fmt.Fprintf(b, "<p>Not Applicable: %d</p>\n", summary.NotApplicable)
	b.WriteString("</div>\n")
}

func writeFilters(b *strings.Builder, cat *catalog.Catalog) {
	b.WriteString("<input type=\"text\" id=\"searchInput\" class=\"search-bar\" placeholder=\"Search controls...\" onkeyup=\"searchControls()\">\n")
	b.WriteString("<div class=\"filter-options\">\n<label>Filter by Family: </label>\n")
	b.WriteString("<select id=\"familyFilter\" onchange=\"filterControls()\">\n<option value=\"all\">All</option>\n")
	for _, group := range cat.Groups {
		fmt.Fprintf(b, "<option value=\"%s\">%s (%s)</option>\n",
			html.EscapeString(group.ID), html.EscapeString(group.Title), html.EscapeString(group.ID))
	}
	b.WriteString("</select>\n<label>Filter by Status: </label>\n")
	b.WriteString("<select id=\"statusFilter\" onchange=\"filterByStatus()\">\n<option value=\"all\">All</option>\n")
	for _, status := range StatusOptions {
		fmt.Fprintf(b, "<option value=\"%s\">%s</option>\n", status, statusLabel(status))
	}
	b.WriteString("</select>\n</div>\n")
}

func writeTOC(b *strings.Builder, cat *catalog.Catalog) {
	b.WriteString("<button id=\"toggleToc\">&#9776; TOC</button>\n")
	b.WriteString("<div id=\"tocSidebar\" class=\"toc-sidebar collapsed\">\n<h3>Table of Contents</h3>\n<ul class=\"toc\">\n")
	for _, group := range cat.Groups {
		fmt.Fprintf(b, "<li><a href=\"#group-%s\">%s (%s)</a></li>\n",
			html.EscapeString(group.ID), html.EscapeString(group.Title), html.EscapeString(group.ID))
		for _, ctrl := range group.Controls {
			if ctrl.ID == "" {
				continue
			}
			fmt.Fprintf(b, "<li class=\"toc-control\"><a href=\"#%s\">%s (%s)</a></li>\n",
				html.EscapeString(ctrl.ID), html.EscapeString(ctrl.Title), html.EscapeString(ctrl.ID))
		}
	}
	for _, ctrl := range cat.Controls {
		if ctrl.ID == "" {
			continue
		}
		fmt.Fprintf(b, "<li><a href=\"#%s\">%s (%s)</a></li>\n",
			html.EscapeString(ctrl.ID), html.EscapeString(ctrl.Title), html.EscapeString(ctrl.ID))
	}
	b.WriteString("</ul>\n</div>\n")
}

func writeGroup(b *strings.Builder, group *catalog.Group, cat *catalog.Catalog) {
	fmt.Fprintf(b, "<div class=\"group\" id=\"group-%s\">\n", html.EscapeString(group.ID))
	fmt.Fprintf(b, "<h4>%s (%s)</h4>\n", html.EscapeString(group.Title), html.EscapeString(group.ID))
	if summary := FamilySummary(group.ID); summary != "" {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(summary))
	}
	if group.Class != "" {
		fmt.Fprintf(b, "<p>Class: %s</p>\n", html.EscapeString(group.Class))
	}
	if len(group.Parts) > 0 {
		b.WriteString("<ul>\n")
		for _, node := range RenderParts(group.Parts, 0, nil, cat.Params) {
			writePartNode(b, node)
		}
		b.WriteString("</ul>\n")
	}
	writeControls(b, group.Controls, cat)
	b.WriteString("</div>\n")
}

// writeControls emits the block for each control in sequence. A control
// without an id cannot be anchored or filtered, so it is skipped with a
// diagnostic and rendering continues.
func writeControls(b *strings.Builder, controls []catalog.Control, cat *catalog.Catalog) {
	for i := range controls {
		ctrl := &controls[i]
		if ctrl.ID == "" {
			logrus.WithField("title", ctrl.Title).Warn("skipping control without id")
			continue
		}
		writeControl(b, NewControlView(ctrl, cat))
	}
}

func writeControl(b *strings.Builder, view *ControlView) {
	fmt.Fprintf(b, "<div class=\"control\" id=\"%s\" data-family=\"%s\">\n",
		html.EscapeString(view.ID), html.EscapeString(catalog.Family(view.ID)))
	fmt.Fprintf(b, "<h4 title=\"%s\">%s (%s)</h4>\n",
		html.EscapeString(view.Title), html.EscapeString(view.Title), html.EscapeString(view.ID))

	if view.Summary != "" {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(view.Summary))
	}
	if view.Class != "" {
		fmt.Fprintf(b, "<p><strong>Class:</strong> %s</p>\n", html.EscapeString(view.Class))
	}

	if len(view.Props) > 0 {
		b.WriteString("<p><strong>Properties:</strong></p>\n<ul>\n")
		for _, prop := range view.Props {
			fmt.Fprintf(b, "<li>%s: %s", html.EscapeString(prop.Name), html.EscapeString(prop.Value))
			if prop.Class != "" {
				fmt.Fprintf(b, " (class: %s)", html.EscapeString(prop.Class))
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("<p><strong>Implementation Guidance:</strong></p>\n")
	fmt.Fprintf(b, "<div class=\"implementation-guidance\"><p>%s</p></div>\n", html.EscapeString(view.Guidance))

	writeStatusSelect(b, view)

	if len(view.Params) > 0 {
		b.WriteString("<details><summary><strong>Parameters</strong></summary>\n<ul>\n")
		for _, param := range view.Params {
			fmt.Fprintf(b, "<li>ID: %s", html.EscapeString(param.ID))
			if param.Label != "" {
				fmt.Fprintf(b, " - Label: %s", html.EscapeString(param.Label))
			}
			if param.Usage != "" {
				fmt.Fprintf(b, " - Usage: %s", html.EscapeString(param.Usage))
			}
			for _, constraint := range param.Constraints {
				fmt.Fprintf(b, "<br>Constraint: %s", html.EscapeString(constraint))
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n</details>\n")
	}

	if len(view.Parts) > 0 {
		b.WriteString("<details><summary><strong>Details</strong></summary>\n<ul>\n")
		for _, node := range view.Parts {
			writePartNode(b, node)
		}
		b.WriteString("</ul>\n</details>\n")
	}

	if len(view.Related) > 0 {
		b.WriteString("<p><strong>Related Controls:</strong> ")
		for i, ref := range view.Related {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRef(b, ref)
		}
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>\n")
}

func writeStatusSelect(b *strings.Builder, view *ControlView) {
	b.WriteString("<p><strong>Status:</strong></p>\n")
	fmt.Fprintf(b, "<select class=\"status-select\" onchange=\"updateStatus(this, '%s')\">\n", html.EscapeString(view.ID))
	for _, status := range StatusOptions {
		selected := ""
		if status == view.Status || (view.Status == "" && status == "not-implemented") {
			selected = " selected"
		}
		fmt.Fprintf(b, "<option value=\"%s\"%s>%s</option>\n", status, selected, statusLabel(status))
	}
	b.WriteString("</select>\n")
}

func writePartNode(b *strings.Builder, node *PartNode) {
	partID := node.ID
	if partID == "" {
		partID = "N/A"
	}
	fmt.Fprintf(b, "<li><strong>%s</strong> (ID: %s)", html.EscapeString(node.Name), html.EscapeString(partID))
	if text := node.Prose(); text != "" {
		fmt.Fprintf(b, "<p>%s</p>", html.EscapeString(text))
	}
	if len(node.Children) > 0 {
		b.WriteString("<ul>\n")
		for _, child := range node.Children {
			writePartNode(b, child)
		}
		b.WriteString("</ul>\n")
	}
	if len(node.Links) > 0 {
		hrefs := make([]string, len(node.Links))
		for i, link := range node.Links {
			hrefs[i] = html.EscapeString(link.Href)
		}
		fmt.Fprintf(b, "<p>Related Links: %s</p>", strings.Join(hrefs, ", "))
	}
	if node.Method != nil {
		fmt.Fprintf(b, "<p><strong>%s</strong></p>", html.EscapeString(node.Method.Heading))
		if len(node.Method.Items) > 0 {
			b.WriteString("<ul>\n")
			for _, item := range node.Method.Items {
				fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item))
			}
			b.WriteString("</ul>\n")
		}
	}
	b.WriteString("</li>\n")
}

func writeRef(b *strings.Builder, ref xref.Ref) {
	switch ref.Status {
	case xref.StatusExternal:
		fmt.Fprintf(b, "<a href=\"%s\">%s</a> (External)",
			html.EscapeString(ref.Href), html.EscapeString(ref.Display))
	case xref.StatusInternal:
		fmt.Fprintf(b, "<a href=\"#%s\">%s</a>",
			html.EscapeString(ref.TargetID), html.EscapeString(ref.Display))
	default:
		b.WriteString(html.EscapeString(ref.Display))
	}
}

func statusLabel(status string) string {
	switch status {
	case "not-implemented":
		return "Not Implemented"
	case "in-progress":
		return "In Progress"
	case "implemented":
		return "Implemented"
	case "not-applicable":
		return "Not Applicable"
	default:
		return status
	}
}

// catalogHTMLStyles returns the inline CSS <style> block for exported
// catalogs.
func catalogHTMLStyles() string {
	return `<style>
body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
h1, h2, h3, h4 { color: #333; }
h1 { border-bottom: 2px solid #333; padding-bottom: 5px; }
h4 { margin-top: 20px; color: #555; }
.group, .control { border: 1px solid #ddd; padding: 15px; margin-bottom: 15px; border-radius: 5px; background-color: #f9f9f9; }
.toc { list-style-type: none; padding-left: 0; }
.toc li { margin: 5px 0; }
.toc-control { margin-left: 20px; }
details { margin: 10px 0; }
summary { cursor: pointer; font-weight: bold; }
ul { list-style-type: disc; margin-left: 20px; }
p { margin: 5px 0; }
a { color: #0066cc; text-decoration: none; }
a:hover { text-decoration: underline; }
.search-bar { margin: 20px 0; padding: 5px; width: 100%; }
.filter-options { margin: 10px 0; }
.compliance-dashboard { background: #e9f7ef; padding: 15px; border-radius: 5px; }
.implementation-guidance { background: #f0f8ff; padding: 10px; border-radius: 5px; }
.status-select { margin-left: 10px; }
.highlight { background-color: #fff176; }
.toc-sidebar { position: fixed; top: 0; left: 0; width: 25%; height: 100%; background-color: #f9f9f9; overflow-y: auto; transition: width 0.3s; z-index: 1000; }
.main-content { margin-left: 25%; transition: margin-left 0.3s; }
.toc-sidebar.collapsed { width: 0; }
.main-content.expanded { margin-left: 0; }
#toggleToc { position: fixed; top: 10px; left: 10px; z-index: 1001; background-color: #0066cc; color: white; border: none; padding: 5px 10px; cursor: pointer; }
#toggleToc:hover { background-color: #0056b3; }
</style>
`
}

// catalogHTMLScript returns the client-side search, filter, and TOC script.
func catalogHTMLScript() string {
	return `<script>
function highlightText(node, searchText, highlightClass) {
  if (node.nodeType === 3) {
    const text = node.nodeValue;
    const regex = new RegExp(searchText, 'gi');
    if (text.toLowerCase().includes(searchText.toLowerCase())) {
      const span = document.createElement('span');
      span.innerHTML = text.replace(regex, match => '<span class="' + highlightClass + '">' + match + '</span>');
      node.parentNode.replaceChild(span, node);
    }
  } else if (node.nodeType === 1 && node.nodeName !== 'SCRIPT' && node.nodeName !== 'STYLE') {
    for (let i = 0; i < node.childNodes.length; i++) {
      highlightText(node.childNodes[i], searchText, highlightClass);
    }
  }
}

function searchControls() {
  var input = document.getElementById('searchInput').value;
  var controls = document.querySelectorAll('.control');
  controls.forEach(function(control) {
    if (!control.dataset.originalHtml) {
      control.dataset.originalHtml = control.innerHTML;
    } else {
      control.innerHTML = control.dataset.originalHtml;
    }
    var text = control.textContent.toLowerCase();
    if (input && text.includes(input.toLowerCase())) {
      control.style.display = '';
      highlightText(control, input, 'highlight');
    } else {
      control.style.display = input ? 'none' : '';
    }
  });
}

function filterControls() {
  var family = document.getElementById('familyFilter').value;
  var controls = document.querySelectorAll('.control');
  controls.forEach(function(control) {
    var controlFamily = control.getAttribute('data-family');
    control.style.display = (family === 'all' || controlFamily === family) ? '' : 'none';
  });
}

function filterByStatus() {
  var status = document.getElementById('statusFilter').value;
  var controls = document.querySelectorAll('.control');
  controls.forEach(function(control) {
    var controlStatus = control.querySelector('.status-select').value;
    control.style.display = (status === 'all' || controlStatus === status) ? '' : 'none';
  });
}

function updateStatus(select, controlId) {
  console.log('Status of ' + controlId + ' updated to: ' + select.value);
}

document.addEventListener('DOMContentLoaded', function() {
  var toggleButton = document.getElementById('toggleToc');
  if (toggleButton) {
    toggleButton.addEventListener('click', function() {
      var toc = document.getElementById('tocSidebar');
      var content = document.getElementById('mainContent');
      if (toc.classList.contains('collapsed')) {
        toc.classList.remove('collapsed');
        content.classList.remove('expanded');
      } else {
        toc.classList.add('collapsed');
        content.classList.add('expanded');
      }
    });
  }
  searchControls();
});
</script>
`
}
