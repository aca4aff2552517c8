package importer

import "fmt"

// Column headers of the point-of-sale export. The exact strings are
// load-bearing: they must match the export byte for byte.
const (
	posColCode        = "Mã hàng"
	posColRelatedCode = "Mã hàng liên quan"
	posColName        = "Tên hàng"
	posColCategory    = "Nhóm hàng(3 Cấp)"
	posColAttributes  = "Thuộc tính"
	posColPrice       = "Giá bán"
	posColStock       = "Tồn kho"
	posColDescription = "Mô tả"
	posColImage       = "Hình ảnh"
)

// Column headers of the marketplace mass-update exports (basic info, media,
// sales). These use the marketplace's technical-key dialect.
const (
	mkColProductID   = "et_title_product_id"
	mkColParentSKU   = "et_title_parent_sku"
	mkColProductName = "et_title_product_name"
	mkColDescription = "et_title_product_description"
	mkColPrice       = "et_title_variation_price"
	mkColStock       = "et_title_variation_stock"
	mkColVariantSKU  = "et_title_variation_sku"
)

// The media export carries a fixed number of numbered image columns per
// product and, per variation slot, numbered option/option-image column pairs.
const (
	mkImageSlots     = 9
	mkVariationSlots = 2
	mkOptionSlots    = 20
)

func mkImageCol(slot int) string {
	return fmt.Sprintf("et_title_image_%d", slot)
}

func mkOptionCol(variation, option int) string {
	return fmt.Sprintf("et_title_variation_%d_option_%d", variation, option)
}

func mkOptionImageCol(variation, option int) string {
	return fmt.Sprintf("et_title_variation_%d_option_image_%d", variation, option)
}
