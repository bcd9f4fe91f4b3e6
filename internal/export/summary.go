// Package export writes assembled models to external formats.
package export

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/Faultbox/castview/internal/model"
)

// Summary builds a tabular representation of model statistics.
func Summary(m *model.Model) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Model", "Item", "Count"})
	table.Append([]string{m.Name, "Bones", fmt.Sprintf("%d", m.Stats.Bones)})
	table.Append([]string{"", "Materials", fmt.Sprintf("%d", m.Stats.Materials)})
	table.Append([]string{"", "Meshes", fmt.Sprintf("%d", len(m.Meshes))})
	table.Append([]string{"", "Vertices", fmt.Sprintf("%d", m.Stats.Vertices)})
	table.Append([]string{"", "Faces", fmt.Sprintf("%d", m.Stats.Faces)})
	table.SetFooter([]string{"Up axis", " ", m.Axis.Up})

	table.Render()
	return buf.String()
}

// MeshTable lists each mesh with its material and geometry counts.
func MeshTable(m *model.Model) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mesh", "Material", "Render", "Vertices", "Faces", "UVs", "Skinned"})
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		mat := m.MeshMaterial(mesh)
		name := mesh.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", i)
		}
		table.Append([]string{
			name,
			mat.Name,
			renderKind(mat.Render),
			fmt.Sprintf("%d", len(mesh.Positions)),
			fmt.Sprintf("%d", mesh.TriangleCount()),
			fmt.Sprintf("%t", mesh.UVs != nil),
			fmt.Sprintf("%t", mesh.Weights != nil),
		})
	}

	table.Render()
	return buf.String()
}

func renderKind(r model.Render) string {
	if r.Textured() {
		return "texture"
	}
	return fmt.Sprintf("#%02X%02X%02X", r.Color.R, r.Color.G, r.Color.B)
}
