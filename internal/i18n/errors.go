// Package i18n translates backend error codes into the Portuguese messages
// shown to users.
package i18n

// FallbackMessage is returned for any code not present in the table.
const FallbackMessage = "Ocorreu um erro desconhecido. Tente novamente."

var authErrors = map[string]string{
	"auth/invalid-email":          "O e-mail fornecido é inválido.",
	"auth/missing-password":       "Senha obrigatória.",
	"auth/user-disabled":          "Este usuário foi desativado.",
	"auth/user-not-found":         "Nenhum usuário encontrado com esse e-mail.",
	"auth/wrong-password":         "A senha está incorreta.",
	"auth/weak-password":          "A senha deve conter no mínimo 8 caracteres.",
	"auth/email-already-in-use":   "Este e-mail já está em uso.",
	"auth/missing-email":          "Por favor, forneça um e-mail.",
	"auth/too-many-requests":      "Muitas tentativas. Tente novamente mais tarde.",
	"auth/network-request-failed": "Falha na conexão de rede. Tente novamente.",
}

// Translate maps a backend error code to its localized message. Unknown
// codes fall back to a generic message.
func Translate(code string) string {
	if msg, ok := authErrors[code]; ok {
		return msg
	}
	return FallbackMessage
}
