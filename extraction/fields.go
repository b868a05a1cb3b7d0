package extraction

// Field keys of the extraction result.
const (
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldPaymentMode   = "payment_mode"
	FieldUnitPrice     = "unit_price"
	FieldQuantity      = "quantity"
	FieldUnitOfMeasure = "unit_of_measure"
	FieldItemType      = "item_type"
	FieldItem          = "item"
	FieldBrand         = "brand"
	FieldSpecification = "specification"
)

// FieldDefinition binds a result field to the lowercase aliases a printed
// label may use for it.
type FieldDefinition struct {
	Key     string
	Aliases []string
}

// defaultFields is the static alias table, loaded once and never mutated.
// Order matters twice: when one fragment's text contains aliases of several
// fields, the earliest entry wins, and more specific labels ("unit price",
// "item type") must sit above the generic fields whose aliases they contain.
var defaultFields = []FieldDefinition{
	{FieldDate, []string{"date", "dated", "bill dt", "invoice dt"}},
	{FieldAmount, []string{"amount", "total", "grand total", "net payable", "payable"}},
	{FieldDescription, []string{"description", "desc", "particulars", "details", "narration"}},
	{FieldCategory, []string{"category", "categories", "expense head"}},
	{FieldPaymentMode, []string{"payment mode", "payment", "paid by", "paid via", "mode"}},
	{FieldUnitPrice, []string{"unit price", "rate", "price"}},
	{FieldQuantity, []string{"quantity", "qty", "nos"}},
	{FieldUnitOfMeasure, []string{"uom", "unit"}},
	{FieldItemType, []string{"item type", "material type", "type"}},
	{FieldItem, []string{"item", "material", "product", "goods"}},
	{FieldBrand, []string{"brand", "make", "company"}},
	{FieldSpecification, []string{"specification", "spec", "grade", "size"}},
}

// DefaultFields returns a copy of the built-in field table.
func DefaultFields() []FieldDefinition {
	out := make([]FieldDefinition, len(defaultFields))
	copy(out, defaultFields)
	return out
}
