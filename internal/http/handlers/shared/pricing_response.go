package shared

import (
	"github.com/duomart-next/internal/i18n"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TraceStepView 本地化后的解析步骤
type TraceStepView struct {
	Key     string   `json:"key"`
	Args    []string `json:"args,omitempty"`
	Message string   `json:"message"`
}

// ResolvedPriceView 价格解析响应
type ResolvedPriceView struct {
	*service.ResolvedPrice
	Explanation []TraceStepView `json:"explanation"`
}

// RecommendationView 本地化后的定价建议
type RecommendationView struct {
	pricing.Recommendation
	Message string `json:"message"`
}

// CompetitiveView 竞争分析响应
type CompetitiveView struct {
	Analysis        pricing.Analysis     `json:"analysis"`
	PositionLabel   string               `json:"position_label"`
	Recommendations []RecommendationView `json:"recommendations"`
	Competitors     []pricing.Peer       `json:"competitors"`
}

func localeOf(c *gin.Context) string {
	return i18n.ResolveLocale(c)
}

// BuildResolvedPriceView 将解析结果的追踪步骤按请求语言渲染
func BuildResolvedPriceView(c *gin.Context, resolved *service.ResolvedPrice) ResolvedPriceView {
	locale := localeOf(c)
	steps := make([]TraceStepView, 0, len(resolved.Breakdown.Trace))
	for _, step := range resolved.Breakdown.Trace {
		steps = append(steps, TraceStepView{
			Key:     step.Key,
			Args:    step.Args,
			Message: i18n.Render(locale, "trace."+step.Key, step.Args),
		})
	}
	return ResolvedPriceView{ResolvedPrice: resolved, Explanation: steps}
}

// BuildCompetitiveView 将竞争分析结果按请求语言渲染
func BuildCompetitiveView(c *gin.Context, result *pricing.CompetitiveResult) CompetitiveView {
	locale := localeOf(c)
	recommendations := make([]RecommendationView, 0, len(result.Recommendations))
	for _, item := range result.Recommendations {
		recommendations = append(recommendations, RecommendationView{
			Recommendation: item,
			Message:        i18n.Render(locale, "recommendation."+item.Code, item.Args),
		})
	}
	competitors := result.Competitors
	if competitors == nil {
		competitors = []pricing.Peer{}
	}
	return CompetitiveView{
		Analysis:        result.Analysis,
		PositionLabel:   i18n.T(locale, "position."+result.Analysis.MarketPosition),
		Recommendations: recommendations,
		Competitors:     competitors,
	}
}
