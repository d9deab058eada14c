package shopify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/scentquiz/internal/logging"
)

// Product is the subset of a Shopify product the catalog sync needs.
type Product struct {
	ID               string
	Title            string
	Handle           string
	Description      string
	DescriptionHTML  string
	Vendor           string
	ProductType      string
	Tags             []string
	Status           string
	ImageURL         string
	Price            decimal.Decimal
	CurrencyCode     string
	AvailableForSale bool
}

// Collection is a Shopify collection with all of its products.
type Collection struct {
	ID       string
	Title    string
	Handle   string
	Products []Product
}

const productFields = `
  id
  title
  handle
  description
  descriptionHtml
  vendor
  productType
  tags
  status
  featuredImage {
    url(transform: {maxWidth: 400, maxHeight: 300, crop: CENTER})
  }
  images(first: 1) {
    edges { node { url(transform: {maxWidth: 400, maxHeight: 300}) } }
  }
  priceRangeV2 {
    minVariantPrice { amount currencyCode }
  }
  variants(first: 1) {
    edges { node { availableForSale } }
  }
`

const productsQuery = `
query Products($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges { node {` + productFields + `} }
    pageInfo { hasNextPage endCursor }
  }
}`

const collectionsQuery = `
query Collections($first: Int!, $after: String, $query: String) {
  collections(first: $first, after: $after, query: $query) {
    edges { node { id title handle } }
    pageInfo { hasNextPage endCursor }
  }
}`

const collectionProductsQuery = `
query CollectionProducts($id: ID!, $first: Int!, $after: String) {
  collection(id: $id) {
    products(first: $first, after: $after) {
      edges { node {` + productFields + `} }
      pageInfo { hasNextPage endCursor }
    }
  }
}`

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type imageNode struct {
	URL string `json:"url"`
}

type productNode struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Handle          string     `json:"handle"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"descriptionHtml"`
	Vendor          string     `json:"vendor"`
	ProductType     string     `json:"productType"`
	Tags            []string   `json:"tags"`
	Status          string     `json:"status"`
	FeaturedImage   *imageNode `json:"featuredImage"`
	Images          struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	PriceRange struct {
		MinVariantPrice struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"minVariantPrice"`
	} `json:"priceRangeV2"`
	Variants struct {
		Edges []struct {
			Node struct {
				AvailableForSale bool `json:"availableForSale"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type productConnection struct {
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
	PageInfo pageInfo `json:"pageInfo"`
}

func (n productNode) toProduct() (Product, error) {
	p := Product{
		ID:              n.ID,
		Title:           n.Title,
		Handle:          n.Handle,
		Description:     n.Description,
		DescriptionHTML: n.DescriptionHTML,
		Vendor:          n.Vendor,
		ProductType:     n.ProductType,
		Tags:            n.Tags,
		Status:          n.Status,
		CurrencyCode:    n.PriceRange.MinVariantPrice.CurrencyCode,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	switch {
	case n.FeaturedImage != nil && n.FeaturedImage.URL != "":
		p.ImageURL = n.FeaturedImage.URL
	case len(n.Images.Edges) > 0:
		p.ImageURL = n.Images.Edges[0].Node.URL
	}

	if len(n.Variants.Edges) > 0 {
		p.AvailableForSale = n.Variants.Edges[0].Node.AvailableForSale
	}

	if amount := strings.TrimSpace(n.PriceRange.MinVariantPrice.Amount); amount != "" {
		price, err := decimal.NewFromString(amount)
		if err != nil {
			return Product{}, fmt.Errorf("parse price %q of product %s: %w", amount, n.ID, err)
		}
		p.Price = price
	}
	return p, nil
}

func (conn productConnection) products() ([]Product, error) {
	out := make([]Product, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		p, err := e.Node.toProduct()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// FetchAllProducts pages through every product of the store. A failed page
// fails the whole call.
func (c *Client) FetchAllProducts(ctx context.Context, pageSize int) ([]Product, error) {
	pageSize = ClampPageSize(pageSize)
	log := logging.With("shopify")

	var all []Product
	var cursor *string
	for page := 1; ; page++ {
		var data struct {
			Products productConnection `json:"products"`
		}
		vars := map[string]interface{}{"first": pageSize, "after": cursor}
		if err := c.Do(ctx, productsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("fetch products page %d: %w", page, err)
		}

		products, err := data.Products.products()
		if err != nil {
			return nil, err
		}
		all = append(all, products...)
		log.Debug().Int("page", page).Int("count", len(products)).Int("total", len(all)).Msg("fetched products page")

		if !data.Products.PageInfo.HasNextPage || data.Products.PageInfo.EndCursor == "" {
			break
		}
		next := data.Products.PageInfo.EndCursor
		cursor = &next
	}
	return all, nil
}

// FetchCollections returns the collections whose title matches one of titles,
// each with every one of its products.
func (c *Client) FetchCollections(ctx context.Context, titles []string, pageSize int) ([]Collection, error) {
	pageSize = ClampPageSize(pageSize)
	log := logging.With("shopify")

	terms := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, "title:"+strconv.Quote(t))
		}
	}
	search := strings.Join(terms, " OR ")

	var collections []Collection
	var cursor *string
	for {
		var data struct {
			Collections struct {
				Edges []struct {
					Node struct {
						ID     string `json:"id"`
						Title  string `json:"title"`
						Handle string `json:"handle"`
					} `json:"node"`
				} `json:"edges"`
				PageInfo pageInfo `json:"pageInfo"`
			} `json:"collections"`
		}
		vars := map[string]interface{}{"first": pageSize, "after": cursor}
		if search != "" {
			vars["query"] = search
		}
		if err := c.Do(ctx, collectionsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("fetch collections: %w", err)
		}
		for _, e := range data.Collections.Edges {
			collections = append(collections, Collection{ID: e.Node.ID, Title: e.Node.Title, Handle: e.Node.Handle})
		}
		if !data.Collections.PageInfo.HasNextPage || data.Collections.PageInfo.EndCursor == "" {
			break
		}
		next := data.Collections.PageInfo.EndCursor
		cursor = &next
	}

	for i := range collections {
		products, err := c.fetchCollectionProducts(ctx, collections[i].ID, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch products of collection %q: %w", collections[i].Title, err)
		}
		collections[i].Products = products
		log.Info().Str("collection", collections[i].Title).Int("products", len(products)).Msg("fetched collection")
	}
	return collections, nil
}

func (c *Client) fetchCollectionProducts(ctx context.Context, id string, pageSize int) ([]Product, error) {
	all := []Product{}
	var cursor *string
	for {
		var data struct {
			Collection *struct {
				Products productConnection `json:"products"`
			} `json:"collection"`
		}
		vars := map[string]interface{}{"id": id, "first": pageSize, "after": cursor}
		if err := c.Do(ctx, collectionProductsQuery, vars, &data); err != nil {
			return nil, err
		}
		if data.Collection == nil {
			return nil, fmt.Errorf("collection %s not found", id)
		}

		products, err := data.Collection.Products.products()
		if err != nil {
			return nil, err
		}
		all = append(all, products...)

		if !data.Collection.Products.PageInfo.HasNextPage || data.Collection.Products.PageInfo.EndCursor == "" {
			break
		}
		next := data.Collection.Products.PageInfo.EndCursor
		cursor = &next
	}
	return all, nil
}
