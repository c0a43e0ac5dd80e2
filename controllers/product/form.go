package productcontroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/shopspring/decimal"
)

// variantForm is one element of the "variants" JSON form field. Uploaded
// files for variant i arrive as "variant_images_<i>".
type variantForm struct {
	ID        uint            `json:"id"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	OldPrice  decimal.Decimal `json:"old_price"`
	Stock     int             `json:"stock"`
	ImageURLs []string        `json:"image_urls"`
}

func formBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.PostForm(key))
	return v
}

// productInput reads the multipart product form. The returned closers must be
// closed once the service call finished.
func productInput(c *gin.Context, requireVariants bool) (admin.ProductInput, []io.Closer, error) {
	in := admin.ProductInput{
		Name:          strings.TrimSpace(c.PostForm("name")),
		Description:   c.PostForm("description"),
		IsFeatured:    formBool(c, "is_featured"),
		IsBestSelling: formBool(c, "is_best_selling"),
		IsOnSale:      formBool(c, "is_on_sale"),
	}
	if in.Name == "" {
		return in, nil, errors.New("name is required")
	}
	if raw := strings.TrimSpace(c.PostForm("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return in, nil, errors.New("invalid category_id")
		}
		cid := uint(id)
		in.CategoryID = &cid
	}

	raw, hasVariants := c.GetPostForm("variants")
	if !hasVariants {
		if requireVariants {
			return in, nil, errors.New("variants are required")
		}
		return in, nil, nil
	}
	var forms []variantForm
	if err := json.Unmarshal([]byte(raw), &forms); err != nil {
		return in, nil, fmt.Errorf("invalid variants: %v", err)
	}

	mf, _ := c.MultipartForm()
	var closers []io.Closer
	in.Variants = make([]admin.VariantInput, 0, len(forms))
	for i, f := range forms {
		v := admin.VariantInput{
			ID:        f.ID,
			Size:      strings.TrimSpace(f.Size),
			Price:     f.Price,
			OldPrice:  f.OldPrice,
			Stock:     f.Stock,
			ImageURLs: f.ImageURLs,
		}
		if mf != nil {
			for _, fh := range mf.File[fmt.Sprintf("variant_images_%d", i)] {
				file, err := fh.Open()
				if err != nil {
					closeAll(closers)
					return in, nil, fmt.Errorf("open %s: %v", fh.Filename, err)
				}
				closers = append(closers, file)
				v.Uploads = append(v.Uploads, admin.Upload{Filename: fh.Filename, Body: file})
			}
		}
		in.Variants = append(in.Variants, v)
	}
	return in, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, cl := range closers {
		cl.Close()
	}
}
