package repository

import (
	"fmt"
	"strings"

	"github.com/duomart-next/internal/i18n"

	"gorm.io/gorm"
)

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

// dialectOf 归一化数据库方言，未知方言按 sqlite 处理
func dialectOf(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return dialectSQLite
	}
	switch strings.ToLower(strings.TrimSpace(db.Dialector.Name())) {
	case "postgres", "postgresql", "pgx":
		return dialectPostgres
	default:
		return dialectSQLite
	}
}

// localizedTextExpr 提取多语言 JSON 列中某个语言的文本
func localizedTextExpr(dialect, column, locale string) string {
	if dialect == dialectPostgres {
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, locale)
	}
	// 语言键含 -，需加引号
	return fmt.Sprintf("json_extract(%s, '$.\"%s\"')", column, locale)
}

// localizedSortExpr 排序用的多语言文本：优先指定语言，再依次回退到其他支持语言
func localizedSortExpr(dialect, column, locale string) string {
	locale = i18n.NormalizeLocale(locale)
	locales := i18n.SupportedLocales()
	parts := make([]string, 0, len(locales)+1)
	parts = append(parts, localizedTextExpr(dialect, column, locale))
	for _, item := range locales {
		if item == locale {
			continue
		}
		parts = append(parts, localizedTextExpr(dialect, column, item))
	}
	parts = append(parts, "''")
	return fmt.Sprintf("COALESCE(%s)", strings.Join(parts, ", "))
}

// productSearchClause 商品关键字搜索：slug、品牌与各语言标题/描述
func productSearchClause(dialect, keyword string) (string, []interface{}) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", nil
	}
	operator := "LIKE"
	if dialect == dialectPostgres {
		operator = "ILIKE"
	}
	pattern := "%" + escapeLike(keyword) + "%"

	columns := []string{"slug", "brand"}
	for _, column := range []string{"title_json", "description_json"} {
		for _, locale := range i18n.SupportedLocales() {
			columns = append(columns, localizedTextExpr(dialect, column, locale))
		}
	}
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", column, operator))
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// brandEqualsClause 品牌精确匹配（忽略大小写）
func brandEqualsClause(dialect string) string {
	if dialect == dialectPostgres {
		return "LOWER(brand) = LOWER(?)"
	}
	return "brand = ? COLLATE NOCASE"
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
