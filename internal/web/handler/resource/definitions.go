package resource

import "github.com/adcu-admin/adcu-admin/internal/auth"

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field is one form field of a resource. Rules are validator tags applied to the submitted text.
type Field struct {
	Name    string
	Label   string
	Type    string // text, email, date, month, number, textarea or select
	Rules   string
	List    bool // shown as a column of the list page
	Options []Option
}

// Definition describes the pages of one resource.
type Definition struct {
	Resource auth.Resource
	Path     string
	Title    string
	Singular string
	Fields   []Field
}

// Name is the resource name templates pass to Permissions.Allows.
func (d Definition) Name() string {
	return d.Resource.String()
}

// Columns are the fields shown on the list page.
func (d Definition) Columns() []Field {
	out := make([]Field, 0, len(d.Fields))

	for _, f := range d.Fields {
		if f.List {
			out = append(out, f)
		}
	}

	return out
}

// Definitions returns the four managed resources.
func Definitions() []Definition {
	return []Definition{
		{
			Resource: auth.ResourceUsers,
			Path:     "/users",
			Title:    "Usuarios",
			Singular: "usuario",
			Fields: []Field{
				{Name: "username", Label: "Usuario", Type: "text", Rules: "required,min=3,max=64", List: true},
				{Name: "name", Label: "Nombre", Type: "text", Rules: "required,max=128", List: true},
				{Name: "email", Label: "Correo", Type: "email", Rules: "required,email", List: true},
				{Name: "role", Label: "Rol", Type: "select", Rules: "required,oneof=admin staff contractor", List: true,
					Options: []Option{
						{Value: "admin", Label: "Administrador"},
						{Value: "staff", Label: "Funcionario"},
						{Value: "contractor", Label: "Contratista"},
					}},
			},
		},
		{
			Resource: auth.ResourceContracts,
			Path:     "/contracts",
			Title:    "Contratos",
			Singular: "contrato",
			Fields: []Field{
				{Name: "number", Label: "Número", Type: "text", Rules: "required,max=32", List: true},
				{Name: "contractor", Label: "Contratista", Type: "text", Rules: "required,max=128", List: true},
				{Name: "object", Label: "Objeto", Type: "textarea", Rules: "required,max=1000"},
				{Name: "startDate", Label: "Inicio", Type: "date", Rules: "required,datetime=2006-01-02", List: true},
				{Name: "endDate", Label: "Fin", Type: "date", Rules: "required,datetime=2006-01-02", List: true},
				{Name: "value", Label: "Valor", Type: "number", Rules: "required,numeric"},
			},
		},
		{
			Resource: auth.ResourceDocuments,
			Path:     "/documents",
			Title:    "Documentos",
			Singular: "documento",
			Fields: []Field{
				{Name: "title", Label: "Título", Type: "text", Rules: "required,max=200", List: true},
				{Name: "contractId", Label: "Contrato", Type: "text", Rules: "required,max=32", List: true},
				{Name: "type", Label: "Tipo", Type: "select", Rules: "required,oneof=report invoice certificate other", List: true,
					Options: []Option{
						{Value: "report", Label: "Informe"},
						{Value: "invoice", Label: "Factura"},
						{Value: "certificate", Label: "Certificado"},
						{Value: "other", Label: "Otro"},
					}},
				{Name: "description", Label: "Descripción", Type: "textarea", Rules: "omitempty,max=1000"},
			},
		},
		{
			Resource: auth.ResourceAnalysisData,
			Path:     "/analysis-data",
			Title:    "Datos de análisis",
			Singular: "dato de análisis",
			Fields: []Field{
				{Name: "contractId", Label: "Contrato", Type: "text", Rules: "required,max=32", List: true},
				{Name: "period", Label: "Periodo", Type: "month", Rules: "required,datetime=2006-01", List: true},
				{Name: "indicator", Label: "Indicador", Type: "text", Rules: "required,max=128", List: true},
				{Name: "value", Label: "Valor", Type: "number", Rules: "required,numeric", List: true},
				{Name: "notes", Label: "Notas", Type: "textarea", Rules: "omitempty,max=1000"},
			},
		},
	}
}
