// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type RedirectRequest struct {
	Code string `path:"code"`
}

type RebindLinkRequest struct {
	FullShortUrl string `json:"full_short_url"`
	Gid          string `json:"gid"`
}

type RebindLinkResponse struct {
	FullShortUrl string `json:"full_short_url"`
	Gid          string `json:"gid"`
}
