package epic

import (
	"strconv"
	"time"

	"github.com/glyphkit/glyph/internal/glyph/domain"
	"github.com/glyphkit/glyph/pkg/jwtx"
)

// permissionsBlob is the opaque, compressed permission set the platform
// embeds as the "p" claim. Clients treat it as a black box; this is the
// blob the real service hands to every client.
const permissionsBlob = "eNqtk8lOAzEMht+nQkhlO1iaA0tBnEBC4joyiWdqNeNUiVPo2+NhGShLBxCnbF7+/0vSxKTCSuBCLD5rTNgS5HVW6uCcUEsif5kDij/Y5aexmh7tND9P2x9NK5kSuCgNt9Xe9tK3i5lnPSPPDpX8DaUVpQvsaJeFR4XdLq4DrrdkY9NwYDuDZbkL7GDYGBE2pvtfFc+kZRnyAxZxcyPo472EiB4CrwgmJilHxxhACbsMkqGR6mjHCmGILeQ52h1BbBpK2YI/15nA+Yu20yhKoieFg+9j0blYRAdKz8tq+isImzZeS0YsOgd60Pppck+tsYKEHOpMOXOUWtktSKvD7d16AFQCakK3YBkM2w5lxTYRdebps5u2YPKMks3P10Z7eZQEw7FJvJKwtsgPWCfv6r6M2YB2pOgtEubLun/2Nft6maL/07vfBPiLLzl99yVNxIodsRgTcfQNtAHX3doa97cwpniz495bx0dUELK5"

func unixString(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// ClientTokenClaims builds the claim set of a client token: the
// stateless credential handed out for client_credentials grants. Key
// order is part of the wire format.
func ClientTokenClaims(clientID string, now, expiresAt time.Time) *jwtx.OrderedClaims {
	return jwtx.NewOrderedClaims().
		Set("p", permissionsBlob).
		Set("clsvc", ClientService).
		Set("t", "s").
		Set("mver", "false").
		Set("clid", clientID).
		Set("ic", "true").
		Set("exp", unixString(expiresAt)).
		Set("am", domain.GrantClientCredentials.String()).
		Set("iat", unixString(now)).
		Set("jti", NewID()).
		Set("pfpid", ClientService)
}

// AccessTokenClaims builds the claim set of a user access token.
func AccessTokenClaims(
	user domain.User,
	clientID, deviceID string,
	grant domain.GrantType,
	now, expiresAt time.Time,
) *jwtx.OrderedClaims {
	return jwtx.NewOrderedClaims().
		Set("app", App).
		Set("sub", user.AccountID).
		Set("dvid", deviceID).
		Set("mver", "false").
		Set("clid", clientID).
		Set("dn", user.DisplayName).
		Set("am", grant.String()).
		Set("p", permissionsBlob).
		Set("iai", user.AccountID).
		Set("sec", "1").
		Set("clsvc", ClientService).
		Set("t", "s").
		Set("ic", "true").
		Set("jti", NewID()).
		Set("creation_date", FormatTimestamp(now)).
		Set("hours_expire", "2").
		Set("exp", unixString(expiresAt))
}

// RefreshTokenClaims builds the claim set of a refresh token.
func RefreshTokenClaims(
	user domain.User,
	clientID, deviceID string,
	grant domain.GrantType,
	now, expiresAt time.Time,
) *jwtx.OrderedClaims {
	return jwtx.NewOrderedClaims().
		Set("sub", user.AccountID).
		Set("dvid", deviceID).
		Set("t", "s").
		Set("clid", clientID).
		Set("am", grant.String()).
		Set("jti", NewID()).
		Set("creation_date", FormatTimestamp(now)).
		Set("hours_expire", "2").
		Set("exp", unixString(expiresAt))
}

// ExchangeCodeClaims builds the claim set of an exchange code: the
// short-lived credential a signed-in launcher session trades for a full
// token pair.
func ExchangeCodeClaims(accountID string, expiresAt time.Time) *jwtx.OrderedClaims {
	return jwtx.NewOrderedClaims().
		Set("srvc", SourceService).
		Set("userId", accountID).
		Set("jti", NewID()).
		Set("exp", unixString(expiresAt))
}
