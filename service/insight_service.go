package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"prospection-agent/domain"
	"prospection-agent/logger"
	"prospection-agent/repository"
)

// InsightOptions configures the optional chat-completions backend.
type InsightOptions struct {
	Enabled bool
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// InsightService explains a prospection result in Portuguese. Without an
// API key, or when the remote call fails, it falls back to a fixed template.
type InsightService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	cache      repository.CacheRepository
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const insightSystemPrompt = "Você é um consultor comercial especializado em insumos agrícolas. " +
	"Explique resultados de prospecção de vendas em português do Brasil, de forma clara e objetiva, " +
	"citando os valores em reais (R$) e sugerindo ações práticas para atingir a meta."

func NewInsightService(opts InsightOptions, cache repository.CacheRepository) *InsightService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultInsightTimeout
	}
	return &InsightService{
		apiKey:  opts.APIKey,
		apiURL:  opts.APIURL,
		model:   opts.Model,
		enabled: opts.Enabled && opts.APIKey != "" && opts.APIURL != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache,
	}
}

// Explain returns the explanation for result. It never fails.
func (s *InsightService) Explain(
	ctx context.Context,
	input domain.ProspectionInput,
	result domain.ProspectionResult,
) string {
	if !s.enabled {
		return FallbackInsight(input, result)
	}

	key := insightKey(input)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached
		}
	}

	prompt := fmt.Sprintf(`Analise esta prospecção de venda e gere uma explicação curta.

DADOS:
- Produto: %s
- Dose: %s L/ha
- Área: %s ha
- Preço por litro: R$ %s
- Volume total: %s L
- Valor da venda: R$ %s
- Meta de venda: R$ %s
- Diferença para a meta: R$ %s

INSTRUÇÕES:
1. Diga se a meta foi atingida e por quanto.
2. Se não foi, indique quantos hectares a mais seriam necessários mantendo dose e preço.
3. Responda em 2-3 frases.`,
		input.ProductName,
		groupedf("%.2f", input.DosePerHectare),
		groupedf("%.2f", input.Area),
		groupedf("%.2f", input.PricePerLiter),
		groupedf("%.2f", result.TotalVolume),
		groupedf("%.2f", result.TotalValue),
		groupedf("%.2f", input.SalesTarget),
		groupedf("%.2f", result.TargetGap),
	)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("insight backend failed, using fallback")
		return FallbackInsight(input, result)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, explanation); err != nil {
			logger.C(ctx).Debug().Err(err).Msg("insight cache write failed")
		}
	}
	return explanation
}

func (s *InsightService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: insightSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: InsightMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("insight API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("insight API returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func insightKey(in domain.ProspectionInput) string {
	return fmt.Sprintf("%s|%g|%g|%g|%g", in.ProductName, in.DosePerHectare, in.Area, in.PricePerLiter, in.SalesTarget)
}

// AreaToTarget is the extra area needed to close a negative gap at the
// current dose and price. ok is false when the goal is already met or when
// more area cannot change the sale value.
func AreaToTarget(input domain.ProspectionInput, result domain.ProspectionResult) (area float64, ok bool) {
	perHectare := input.DosePerHectare * input.PricePerLiter
	if result.TargetGap >= 0 || perHectare <= 0 {
		return 0, false
	}
	return -result.TargetGap / perHectare, true
}

// FallbackInsight is the template used when no remote backend answers.
func FallbackInsight(input domain.ProspectionInput, result domain.ProspectionResult) string {
	if result.TargetGap >= 0 {
		return groupedf("A prospecção de %s atinge a meta: valor de venda de R$ %.2f contra meta de R$ %.2f, superando-a em R$ %.2f.",
			input.ProductName, result.TotalValue, input.SalesTarget, result.TargetGap)
	}

	missing := -result.TargetGap
	area, ok := AreaToTarget(input, result)
	if !ok {
		return groupedf("A prospecção de %s fica R$ %.2f abaixo da meta de R$ %.2f. Com dose ou preço zerados, ampliar a área não altera o valor da venda.",
			input.ProductName, missing, input.SalesTarget)
	}
	return groupedf("A prospecção de %s fica R$ %.2f abaixo da meta de R$ %.2f. Mantendo a dose de %.2f L/ha e o preço de R$ %.2f/L, seriam necessários mais %.2f ha para atingi-la.",
		input.ProductName, missing, input.SalesTarget, input.DosePerHectare, input.PricePerLiter, area)
}
