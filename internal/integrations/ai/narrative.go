package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/utils"
)

// The generators below embed the simulation numbers into fixed prompt
// templates and hand the provider's free text back untouched as Body.
// Summary and Recommendations are fixed per kind: the client deliberately
// does not try to parse structure out of the reply.

// GenerateExecutiveReport produces the executive narrative.
func (c *Client) GenerateExecutiveReport(ctx context.Context, input models.SimulationInput) (*models.GeneratedNarrative, error) {
	prompt := fmt.Sprintf(`Analise os seguintes dados de uma empresa brasileira e gere um RELATÓRIO EXECUTIVO completo sobre economia tributária:

DADOS DA EMPRESA:
- Nome: %s
- Tributos pagos: %s
- Valor mensal de tributos: %s
- Período da análise: %d meses
- Percentual de crédito disponível: %s%%
- Percentual de honorários: %s%%

Calcule e apresente:
1. RESUMO EXECUTIVO (3-4 parágrafos)
2. ANÁLISE FINANCEIRA DETALHADA
3. ECONOMIA PROJETADA (mensal e total)
4. FLUXO DE CAIXA IMPACTADO
5. RECOMENDAÇÕES ESTRATÉGICAS (3-5 itens)
6. RISCOS E MITIGAÇÃO
7. PRÓXIMOS PASSOS

Formato: Texto profissional em português brasileiro, com números formatados e análise técnica sólida.`,
		companyName(input), taxTypes(input), utils.FormatBRL(input.MonthlyTaxAmount),
		input.PeriodMonths, input.CreditUsagePercent, input.FeePercent)

	body, err := c.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.GeneratedNarrative{
		Kind:    models.ReportExecutive,
		Body:    body,
		Summary: "Relatório executivo gerado com análise completa da economia tributária.",
		Recommendations: []string{
			"Implementar estratégia de recuperação de créditos",
			"Otimizar fluxo de caixa através dos créditos",
			"Monitorar regularmente a legislação tributária",
		},
	}, nil
}

// GenerateDetailedAnalysis produces the detailed credit analysis.
func (c *Client) GenerateDetailedAnalysis(ctx context.Context, input models.SimulationInput) (*models.GeneratedNarrative, error) {
	prompt := fmt.Sprintf(`Elabore uma ANÁLISE DETALHADA completa dos créditos tributários para:

EMPRESA: %s
TRIBUTOS: %s
VALOR MENSAL: %s
PERÍODO: %d meses

Desenvolva:
1. METODOLOGIA DE CÁLCULO (explicação técnica)
2. BREAKDOWN MENSAL DETALHADO (mês a mês)
3. ANÁLISE DE TENDÊNCIAS
4. COMPARATIVO COM MERCADO
5. OPORTUNIDADES IDENTIFICADAS
6. CRONOGRAMA DE IMPLEMENTAÇÃO
7. MÉTRICAS DE ACOMPANHAMENTO
8. ANÁLISE DE SENSIBILIDADE
9. CONSIDERAÇÕES LEGAIS
10. ANEXOS TÉCNICOS

Use tabelas, percentuais e análises quantitativas. Seja técnico e preciso.`,
		companyName(input), taxTypes(input), utils.FormatBRL(input.MonthlyTaxAmount), input.PeriodMonths)

	body, err := c.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.GeneratedNarrative{
		Kind:    models.ReportDetailed,
		Body:    body,
		Summary: "Análise detalhada com breakdown mensal e métricas específicas.",
		Recommendations: []string{
			"Revisar mensalmente os cálculos de crédito",
			"Implementar controles internos robustos",
			"Manter documentação atualizada",
		},
	}, nil
}

// GenerateAnnualProjection produces the twelve-month projection narrative.
func (c *Client) GenerateAnnualProjection(ctx context.Context, input models.SimulationInput) (*models.GeneratedNarrative, error) {
	prompt := fmt.Sprintf(`Crie uma PROJEÇÃO ANUAL completa para economia tributária:

DADOS BASE:
- Empresa: %s
- Tributos: %s
- Base mensal: %s
- Crédito: %s%%
- Honorários: %s%%

Projete para 12 meses:
1. CENÁRIOS (Conservador, Realista, Otimista)
2. PROJEÇÃO MENSAL DETALHADA
3. IMPACTO NO FLUXO DE CAIXA
4. ANÁLISE DE SAZONALIDADE
5. FATORES DE RISCO TEMPORAL
6. METAS E MARCOS
7. ROI PROJETADO
8. BENEFÍCIOS ACUMULADOS
9. RECOMENDAÇÕES POR TRIMESTRE
10. PLANO DE CONTINGÊNCIA

Inclua gráficos conceituais e números específicos para tomada de decisão.`,
		companyName(input), taxTypes(input), utils.FormatBRL(input.MonthlyTaxAmount),
		input.CreditUsagePercent, input.FeePercent)

	body, err := c.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.GeneratedNarrative{
		Kind:    models.ReportProjection,
		Body:    body,
		Summary: "Projeção anual com cenários e análise de viabilidade.",
		Recommendations: []string{
			"Revisar projeções trimestralmente",
			"Acompanhar indicadores-chave mensalmente",
			"Ajustar estratégia conforme resultados",
		},
	}, nil
}

// GenerateCustomReport embeds the same numeric context plus a caller-supplied
// instruction.
func (c *Client) GenerateCustomReport(ctx context.Context, input models.SimulationInput, userPrompt string) (*models.GeneratedNarrative, error) {
	prompt := fmt.Sprintf(`CONTEXTO DA EMPRESA:
- Nome: %s
- Tributos: %s
- Valor mensal: %s
- Período: %d meses
- %% Crédito: %s%%
- %% Honorários: %s%%

SOLICITAÇÃO ESPECÍFICA:
%s`,
		companyName(input), taxTypes(input), utils.FormatBRL(input.MonthlyTaxAmount),
		input.PeriodMonths, input.CreditUsagePercent, input.FeePercent, userPrompt)

	body, err := c.invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.GeneratedNarrative{
		Kind:            models.ReportCustom,
		Body:            body,
		Summary:         "Relatório personalizado conforme solicitação específica.",
		Recommendations: []string{"Análise personalizada conforme demanda específica"},
	}, nil
}

func companyName(input models.SimulationInput) string {
	if strings.TrimSpace(input.CompanyName) == "" {
		return "Empresa consultada"
	}
	return input.CompanyName
}

func taxTypes(input models.SimulationInput) string {
	if len(input.TaxTypes) == 0 {
		return "PIS/COFINS"
	}
	return strings.Join(input.TaxTypes, ", ")
}
