package admin

import (
	"errors"
	"net/http"

	"anhthu_server/handling"
	"anhthu_server/lib"

	"github.com/MonkyMars/gecho"
)

// maintenanceRequest gates destructive maintenance passes behind an explicit
// confirmation in the body, so a stray POST does nothing.
type maintenanceRequest struct {
	Confirm bool `json:"confirm"`
}

// ReparentCategories handles POST /admin/categories/reparent. It splits
// legacy flat "A/B/C" categories into tree nodes and moves products to the
// leaf.
func (arm *AdminRoutesManager) ReparentCategories(w http.ResponseWriter, r *http.Request) {
	if !arm.confirmed(w, r) {
		return
	}

	reparented, err := arm.catalogService.ReparentPathCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "error.admin.reparentFailed", arm.logger, w)
		return
	}

	arm.logger.Info("Category reparent pass finished", gecho.Field("reparented", reparented))
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"reparented": reparented,
		}),
		gecho.Send(),
	)
}

// CleanupCategories handles POST /admin/categories/cleanup. It deletes
// categories with no products and no children, sweeping until stable.
func (arm *AdminRoutesManager) CleanupCategories(w http.ResponseWriter, r *http.Request) {
	if !arm.confirmed(w, r) {
		return
	}

	deleted, err := arm.catalogService.CleanupUnusedCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "error.admin.cleanupFailed", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"deleted": deleted,
		}),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) confirmed(w http.ResponseWriter, r *http.Request) bool {
	body, err := lib.ExtractAndValidateBody[maintenanceRequest](r)
	if err != nil {
		var ve *lib.ValidationError
		if errors.As(err, &ve) {
			gecho.BadRequest(w,
				gecho.WithMessage("error.validation"),
				gecho.WithData(ve.Errors),
				gecho.Send(),
			)
			return false
		}
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidBody"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return false
	}

	if !body.Confirm {
		gecho.BadRequest(w,
			gecho.WithMessage("error.admin.confirmationRequired"),
			gecho.Send(),
		)
		return false
	}

	return true
}
