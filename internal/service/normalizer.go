package service

import (
	"storefront-service/internal/models"
	"storefront-service/internal/textparse"
)

// NormalizeProduct builds a canonical product from a raw post. There is
// no failure path: any input yields a product, with sentinel defaults
// standing in for fields the extractors could not find. Source text is
// uncontrolled, so garbage in produces a garbage-but-valid row.
//
// Convention for posts: first hashtag is the category, second the brand.
func NormalizeProduct(post models.RawPost) models.Product {
	tags := textparse.ExtractTags(post.Text)

	category := models.DefaultCategory
	if len(tags) >= 1 {
		category = tags[0]
	}
	brand := models.DefaultBrand
	if len(tags) >= 2 {
		brand = tags[1]
	}

	var price int64
	if v, ok := textparse.ExtractPrice(post.Text); ok {
		price = v
	}

	var sizes *string
	if v, ok := textparse.ExtractSizes(post.Text); ok {
		sizes = &v
	}

	var photo *string
	if post.PhotoFileID != "" {
		photo = &post.PhotoFileID
	}

	var descr *string
	if post.Text != "" {
		text := post.Text
		descr = &text
	}

	return models.Product{
		Title:        textparse.FirstLine(post.Text),
		Price:        price,
		PhotoFileID:  photo,
		Description:  descr,
		Category:     category,
		Brand:        brand,
		Sizes:        sizes,
		SourceChatID: post.SourceChatID,
		SourceMsgID:  post.SourceMsgID,
	}
}
