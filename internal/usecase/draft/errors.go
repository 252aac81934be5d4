package draft

import (
	"errors"
	"net/http"

	"github.com/validalex/draft-backend/internal/entity"
)

// Failure is the client-facing description of a pipeline error.
type Failure struct {
	Status  int
	Code    string
	Message string
}

// Classify maps a pipeline error onto an HTTP status, a stable code and a
// user-safe message.
func Classify(err error) Failure {
	switch {
	case errors.Is(err, entity.ErrModelTimeout):
		return Failure{http.StatusGatewayTimeout, "MODEL_TIMEOUT",
			"Tempo limite excedido ao gerar o rascunho. Tente novamente; se persistir, reduza o texto de 'Fatos'."}
	case errors.Is(err, entity.ErrModelEmpty):
		return Failure{http.StatusBadGateway, "MODEL_UPSTREAM", "Modelo não retornou texto utilizável."}
	case errors.Is(err, entity.ErrModelTransient), errors.Is(err, entity.ErrModelUpstream):
		return Failure{http.StatusBadGateway, "MODEL_UPSTREAM", "Falha no serviço de geração de texto."}
	case errors.Is(err, entity.ErrModelOutputNotJSON), errors.Is(err, entity.ErrModelOutputNoSections):
		return Failure{http.StatusInternalServerError, "MODEL_OUTPUT_INVALID", "Resposta do modelo em formato inválido."}
	case errors.Is(err, entity.ErrInvalidTemplateVersion):
		return Failure{http.StatusBadRequest, "INVALID_TEMPLATE_VERSION", "Versão de template inválida."}
	case errors.Is(err, entity.ErrTemplateLoad):
		return Failure{http.StatusInternalServerError, "TEMPLATE_ERROR", "Falha ao carregar o template do rascunho."}
	default:
		return Failure{http.StatusInternalServerError, "DRAFT_COBRANCA_ERR", "Falha ao gerar o rascunho."}
	}
}
