package document

import (
	"net/url"

	"adamosign/utils"

	"go.uber.org/zap"
)

// TokenFromSignerLink extracts the guest token carried in a signer link's
// "data" query parameter. A malformed link yields an empty token and a
// logged warning; it never fails the submission.
func TokenFromSignerLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		utils.GetLogger().Warn("signer link could not be parsed, defaulting token to empty",
			zap.String("link", link), zap.Error(err))
		return ""
	}
	token := u.Query().Get("data")
	if token == "" {
		utils.GetLogger().Warn("signer link carries no token", zap.String("link", link))
	}
	return token
}
