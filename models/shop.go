package models

import "net/url"

// Shop link builders for recommended products. The search string is the AI
// provided "recherche" field of a recommendation.

type ShopLinks struct {
	Zalando string `json:"zalando"`
	Amazon  string `json:"amazon"`
	ASOS    string `json:"asos"`
}

func BuildShopLinks(searchTerms string) ShopLinks {
	return ShopLinks{
		Zalando: "https://www.zalando.fr/catalog/?q=" + url.QueryEscape(searchTerms),
		Amazon:  "https://www.amazon.fr/s?k=" + url.QueryEscape(searchTerms),
		ASOS:    "https://www.asos.com/fr/search/?q=" + url.QueryEscape(searchTerms),
	}
}

// BuildChatProductURL is the chat panel's "lucky" link: one click lands on a
// buy page for the product.
func BuildChatProductURL(searchTerms string) string {
	return "https://www.google.com/search?btnI=1&q=" + url.QueryEscape(searchTerms+" acheter")
}
