package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEN = "en-US"
	LocaleIT = "it-IT"
)

const defaultLocale = LocaleEN

// ResolveLocale 从请求解析语言
// 优先级：lang 查询参数 > Accept-Language 头 > 默认英文。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		if lang := normalizeLocale(strings.SplitN(part, ";", 2)[0]); lang != "" {
			return lang
		}
	}
	return defaultLocale
}

func normalizeLocale(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "it"):
		return LocaleIT
	case strings.HasPrefix(raw, "en"):
		return LocaleEN
	}
	return ""
}

// T 按语言取文案，缺失时回退英文，再缺失返回 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 取文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

var catalog = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.auth_header_missing":    "authorization header missing",
		"error.auth_header_invalid":    "authorization header invalid",
		"error.token_invalid":          "token invalid or expired",
		"error.jwt_secret_missing":     "server auth is not configured",
		"error.internal":               "internal error, please try again",
		"error.rate_limited":           "too many attempts, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.login_failed":           "wrong username or password",
		"error.forbidden":              "forbidden",
		"error.captcha_required":       "captcha required",
		"error.captcha_invalid":        "captcha verification failed",
		"error.captcha_unavailable":    "captcha is not enabled",
		"error.captcha_generate_failed": "failed to generate captcha",
		"error.captcha_verify_failed":  "captcha verification failed, please retry",
		"error.admin_id_invalid":       "admin identity missing",
		"error.admin_id_type_invalid":  "admin identity invalid",
		"error.shop_id_invalid":        "shop identity missing",
		"error.shop_id_type_invalid":   "shop identity invalid",

		"error.card_not_found":       "card is not registered",
		"error.card_not_active":      "card is not active yet",
		"error.card_already_active":  "card is already active",
		"error.card_invalid":         "card data is invalid",
		"error.card_fetch_failed":    "failed to load card",
		"error.card_activate_failed": "card activation failed, please try again",
		"error.card_generate_failed": "card batch generation failed",

		"error.promotion_not_found":           "promotion not found",
		"error.promotion_invalid":             "promotion data is invalid",
		"error.promotion_create_failed":       "failed to create promotion",
		"error.promotion_update_failed":       "failed to update promotion",
		"error.promotion_delete_failed":       "failed to delete promotion",
		"error.promotion_fetch_failed":        "failed to load promotions",
		"error.promotion_not_eligible":        "promotion is not available for this card",
		"error.promotion_activation_not_required": "promotion does not require activation",
		"error.promotion_already_activated":   "promotion was already activated on this card",
		"error.promotion_not_activated":       "promotion must be activated by the card holder first",
		"error.promotion_already_used":        "promotion was already redeemed on this card",

		"error.shop_not_found":     "shop not found",
		"error.shop_invalid":       "shop data is invalid",
		"error.shop_pin_conflict":  "this PIN is already used by another shop",
		"error.shop_pin_invalid":   "invalid PIN",
		"error.shop_create_failed": "failed to create shop",
		"error.shop_update_failed": "failed to update shop",
		"error.shop_delete_failed": "failed to delete shop",
		"error.shop_fetch_failed":  "failed to load shops",

		"error.scan_invalid":           "scanned code does not contain a card number",
		"error.request_invalid":        "request data is invalid",
		"error.request_not_found":      "card request not found",
		"error.request_create_failed":  "failed to submit card request",
		"error.request_fetch_failed":   "failed to load card requests",
		"error.activation_fetch_failed": "failed to load activations",
		"error.validate_failed":        "validation failed, please try again",
		"error.activate_failed":        "activation failed, please try again",
		"error.dashboard_fetch_failed": "failed to load dashboard",
	},
	LocaleIT: {
		"error.bad_request":            "richiesta non valida",
		"error.unauthorized":           "non autorizzato",
		"error.auth_header_missing":    "intestazione di autorizzazione mancante",
		"error.auth_header_invalid":    "intestazione di autorizzazione non valida",
		"error.token_invalid":          "token non valido o scaduto",
		"error.jwt_secret_missing":     "autenticazione del server non configurata",
		"error.internal":               "errore interno, riprova",
		"error.rate_limited":           "troppi tentativi, riprova tra %d secondi",
		"error.rate_limit_unavailable": "limitatore non disponibile",
		"error.login_too_many":         "troppi tentativi di accesso, riprova tra %d secondi",
		"error.login_failed":           "nome utente o password errati",
		"error.forbidden":              "accesso negato",
		"error.captcha_required":       "captcha richiesto",
		"error.captcha_invalid":        "verifica captcha fallita",
		"error.captcha_unavailable":    "captcha non abilitato",
		"error.captcha_generate_failed": "generazione captcha fallita",
		"error.captcha_verify_failed":  "verifica captcha fallita, riprova",
		"error.admin_id_invalid":       "identità amministratore mancante",
		"error.admin_id_type_invalid":  "identità amministratore non valida",
		"error.shop_id_invalid":        "identità negozio mancante",
		"error.shop_id_type_invalid":   "identità negozio non valida",

		"error.card_not_found":       "tessera non registrata",
		"error.card_not_active":      "tessera non ancora attiva",
		"error.card_already_active":  "tessera già attiva",
		"error.card_invalid":         "dati tessera non validi",
		"error.card_fetch_failed":    "impossibile caricare la tessera",
		"error.card_activate_failed": "attivazione tessera fallita, riprova",
		"error.card_generate_failed": "generazione lotto tessere fallita",

		"error.promotion_not_found":           "promozione non trovata",
		"error.promotion_invalid":             "dati promozione non validi",
		"error.promotion_create_failed":       "creazione promozione fallita",
		"error.promotion_update_failed":       "aggiornamento promozione fallito",
		"error.promotion_delete_failed":       "eliminazione promozione fallita",
		"error.promotion_fetch_failed":        "impossibile caricare le promozioni",
		"error.promotion_not_eligible":        "promozione non disponibile per questa tessera",
		"error.promotion_activation_not_required": "la promozione non richiede attivazione",
		"error.promotion_already_activated":   "promozione già attivata su questa tessera",
		"error.promotion_not_activated":       "la promozione deve prima essere attivata dal titolare",
		"error.promotion_already_used":        "promozione già utilizzata su questa tessera",

		"error.shop_not_found":     "negozio non trovato",
		"error.shop_invalid":       "dati negozio non validi",
		"error.shop_pin_conflict":  "questo PIN è già utilizzato da un altro negozio",
		"error.shop_pin_invalid":   "PIN non valido",
		"error.shop_create_failed": "creazione negozio fallita",
		"error.shop_update_failed": "aggiornamento negozio fallito",
		"error.shop_delete_failed": "eliminazione negozio fallita",
		"error.shop_fetch_failed":  "impossibile caricare i negozi",

		"error.scan_invalid":           "il codice scansionato non contiene un numero tessera",
		"error.request_invalid":        "dati richiesta non validi",
		"error.request_not_found":      "richiesta tessera non trovata",
		"error.request_create_failed":  "invio richiesta tessera fallito",
		"error.request_fetch_failed":   "impossibile caricare le richieste",
		"error.activation_fetch_failed": "impossibile caricare le attivazioni",
		"error.validate_failed":        "convalida fallita, riprova",
		"error.activate_failed":        "attivazione fallita, riprova",
		"error.dashboard_fetch_failed": "impossibile caricare il cruscotto",
	},
}
