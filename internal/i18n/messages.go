package i18n

var messages = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":                  "请求参数错误",
		"error.unauthorized":                 "未登录或登录已失效",
		"error.forbidden":                    "无权访问",
		"error.not_found":                    "资源不存在",
		"error.internal":                     "服务器内部错误",
		"error.admin_id_invalid":             "管理员 ID 无效",
		"error.admin_id_type_invalid":        "管理员 ID 类型错误",
		"error.user_id_invalid":              "用户 ID 无效",
		"error.user_id_type_invalid":         "用户 ID 类型错误",
		"error.jwt_secret_missing":           "服务未配置令牌密钥",
		"error.auth_header_missing":          "缺少 Authorization 请求头",
		"error.auth_header_invalid":          "Authorization 格式错误",
		"error.token_invalid":                "令牌无效",
		"error.token_revoked":                "令牌已失效，请重新登录",
		"error.user_disabled":                "账号已被禁用",
		"error.login_invalid":                "用户名或密码错误",
		"error.login_too_many":               "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":                 "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":       "限流服务暂不可用",
		"error.validation":                   "数据校验失败",
		"error.product_not_found":            "商品不存在",
		"error.strategy_not_found":           "定价策略不存在",
		"error.category_not_found":           "分类不存在",
		"error.no_active_pricing":            "商品暂无可用定价",
		"error.order_not_found":              "订单不存在",
		"error.user_not_found":               "用户不存在",
		"error.sole_active_strategy":         "不能删除唯一的有效定价策略",
		"error.no_promotion_candidate":       "没有可提升为主策略的有效策略",
		"error.no_primary_strategy":          "商品缺少主定价策略",
		"error.slug_exists":                  "标识已存在",
		"error.currency_mismatch":            "购物车中的商品币种不一致",
		"error.pricing_changed":              "价格已变动，请刷新购物车后重试",
		"error.volume_discount_invalid":      "阶梯折扣规则不合法",
		"error.invalid_quantity":             "数量必须大于 0",
		"error.cart_empty":                   "购物车为空",
		"error.cart_full":                    "购物车商品已达上限",
		"error.product_not_available":        "商品不可购买",
		"error.invalid_currency":             "币种代码无效",
		"error.invalid_email":                "邮箱格式错误",
		"error.conflict":                     "数据冲突，请刷新后重试",
		"error.pricing_mutation_failed":      "定价策略保存失败",
		"error.pricing_resolve_failed":       "价格计算失败",
		"error.pricing_analysis_failed":      "竞争分析失败",
		"error.product_fetch_failed":         "获取商品失败",
		"error.product_create_failed":        "创建商品失败",
		"error.cart_fetch_failed":            "获取购物车失败",
		"error.cart_update_failed":           "更新购物车失败",
		"error.checkout_failed":              "下单失败",
		"error.order_fetch_failed":           "获取订单失败",
		"error.category_fetch_failed":        "获取分类失败",
		"error.category_create_failed":       "创建分类失败",
		"error.authz_update_failed":          "更新权限失败",
		"error.authz_role_invalid":           "角色不存在或名称非法",
		"validation.negative_base_price":           "基础价格不能为负数",
		"validation.non_positive_conversion_rate":  "换算比例必须大于 0",
		"validation.adjustment_below_minus_100":    "调整百分比不能低于 -100",
		"validation.invalid_condition_combination": "条件类型与分类不匹配",
		"validation.invalid_condition_config":      "条件配置不合法",
		"validation.volume_range_overlap":          "数量区间与已有策略重叠",
		"validation.primary_cannot_be_cleared":     "不能取消唯一主策略，请先指定新的主策略",
		"validation.inactive_primary":              "停用的策略不能设为主策略",
		"validation.band_percent_out_of_range":     "价格带百分比必须在 0 到 100 之间",
		"validation.required":                      "必填字段缺失",
		"validation.conflict_with":                 "冲突策略 #%s",
		"trace.candidates":          "共 %s 条有效策略参与匹配",
		"trace.matched":             "命中策略 %s（%s 条满足条件）",
		"trace.fallback_primary":    "无策略满足条件，使用主策略 %s",
		"trace.fallback_oldest":     "无主策略，使用最早创建的策略 %s",
		"trace.base_price":          "基础价格 %s",
		"trace.adjustment":          "调整 %s%%，策略价 %s",
		"trace.bulk_extra_discount": "数量 %[2]s 享批量额外优惠 %[1]s%%，单价 %[3]s",
		"trace.floor_clamped":       "低于价格区间下限，按 %s 计",
		"trace.final":               "成交单价 %s",
		"recommendation.raise_price":        "价格低于同类均价 %s%%，可考虑提价至 %s",
		"recommendation.lower_price":        "价格高于同类均价 %s%%，可考虑降价至 %s",
		"recommendation.maintain_price":     "价格与同类商品相当（偏差 %s%%），建议保持",
		"recommendation.highlight_discount": "已有优惠策略，建议在商品页突出展示",
		"recommendation.no_competition":     "同价格带内暂无同类商品",
		"position.low":            "低于市场",
		"position.competitive":    "具有竞争力",
		"position.high":           "高于市场",
		"position.no_competition": "无竞争",
	},
	LocaleZhTW: {
		"error.bad_request":                  "請求參數錯誤",
		"error.unauthorized":                 "未登入或登入已失效",
		"error.forbidden":                    "無權存取",
		"error.not_found":                    "資源不存在",
		"error.internal":                     "伺服器內部錯誤",
		"error.admin_id_invalid":             "管理員 ID 無效",
		"error.admin_id_type_invalid":        "管理員 ID 類型錯誤",
		"error.user_id_invalid":              "使用者 ID 無效",
		"error.user_id_type_invalid":         "使用者 ID 類型錯誤",
		"error.jwt_secret_missing":           "服務未設定權杖金鑰",
		"error.auth_header_missing":          "缺少 Authorization 請求標頭",
		"error.auth_header_invalid":          "Authorization 格式錯誤",
		"error.token_invalid":                "權杖無效",
		"error.token_revoked":                "權杖已失效，請重新登入",
		"error.user_disabled":                "帳號已被停用",
		"error.login_invalid":                "使用者名稱或密碼錯誤",
		"error.login_too_many":               "登入嘗試過於頻繁，請 %d 秒後再試",
		"error.rate_limited":                 "請求過於頻繁，請 %d 秒後再試",
		"error.rate_limit_unavailable":       "限流服務暫不可用",
		"error.validation":                   "資料驗證失敗",
		"error.product_not_found":            "商品不存在",
		"error.strategy_not_found":           "定價策略不存在",
		"error.category_not_found":           "分類不存在",
		"error.no_active_pricing":            "商品暫無可用定價",
		"error.order_not_found":              "訂單不存在",
		"error.user_not_found":               "使用者不存在",
		"error.sole_active_strategy":         "不能刪除唯一的有效定價策略",
		"error.no_promotion_candidate":       "沒有可提升為主策略的有效策略",
		"error.no_primary_strategy":          "商品缺少主定價策略",
		"error.slug_exists":                  "識別碼已存在",
		"error.currency_mismatch":            "購物車中的商品幣別不一致",
		"error.pricing_changed":              "價格已變動，請重新整理購物車後再試",
		"error.volume_discount_invalid":      "階梯折扣規則不合法",
		"error.invalid_quantity":             "數量必須大於 0",
		"error.cart_empty":                   "購物車為空",
		"error.cart_full":                    "購物車商品已達上限",
		"error.product_not_available":        "商品不可購買",
		"error.invalid_currency":             "幣別代碼無效",
		"error.invalid_email":                "電子郵件格式錯誤",
		"error.conflict":                     "資料衝突，請重新整理後再試",
		"error.pricing_mutation_failed":      "定價策略儲存失敗",
		"error.pricing_resolve_failed":       "價格計算失敗",
		"error.pricing_analysis_failed":      "競爭分析失敗",
		"error.product_fetch_failed":         "取得商品失敗",
		"error.product_create_failed":        "建立商品失敗",
		"error.cart_fetch_failed":            "取得購物車失敗",
		"error.cart_update_failed":           "更新購物車失敗",
		"error.checkout_failed":              "下單失敗",
		"error.order_fetch_failed":           "取得訂單失敗",
		"error.category_fetch_failed":        "取得分類失敗",
		"error.category_create_failed":       "建立分類失敗",
		"error.authz_update_failed":          "更新權限失敗",
		"error.authz_role_invalid":           "角色不存在或名稱非法",
		"validation.negative_base_price":           "基礎價格不能為負數",
		"validation.non_positive_conversion_rate":  "換算比例必須大於 0",
		"validation.adjustment_below_minus_100":    "調整百分比不能低於 -100",
		"validation.invalid_condition_combination": "條件類型與分類不符",
		"validation.invalid_condition_config":      "條件設定不合法",
		"validation.volume_range_overlap":          "數量區間與既有策略重疊",
		"validation.primary_cannot_be_cleared":     "不能取消唯一主策略，請先指定新的主策略",
		"validation.inactive_primary":              "停用的策略不能設為主策略",
		"validation.band_percent_out_of_range":     "價格帶百分比必須介於 0 到 100",
		"validation.required":                      "必填欄位缺失",
		"validation.conflict_with":                 "衝突策略 #%s",
		"trace.candidates":          "共 %s 條有效策略參與比對",
		"trace.matched":             "命中策略 %s（%s 條符合條件）",
		"trace.fallback_primary":    "無策略符合條件，使用主策略 %s",
		"trace.fallback_oldest":     "無主策略，使用最早建立的策略 %s",
		"trace.base_price":          "基礎價格 %s",
		"trace.adjustment":          "調整 %s%%，策略價 %s",
		"trace.bulk_extra_discount": "數量 %[2]s 享大量額外優惠 %[1]s%%，單價 %[3]s",
		"trace.floor_clamped":       "低於價格區間下限，以 %s 計",
		"trace.final":               "成交單價 %s",
		"recommendation.raise_price":        "價格低於同類均價 %s%%，可考慮調漲至 %s",
		"recommendation.lower_price":        "價格高於同類均價 %s%%，可考慮調降至 %s",
		"recommendation.maintain_price":     "價格與同類商品相當（偏差 %s%%），建議維持",
		"recommendation.highlight_discount": "已有優惠策略，建議在商品頁突顯",
		"recommendation.no_competition":     "同價格帶內暫無同類商品",
		"position.low":            "低於市場",
		"position.competitive":    "具競爭力",
		"position.high":           "高於市場",
		"position.no_competition": "無競爭",
	},
	LocaleEnUS: {
		"error.bad_request":                  "Invalid request parameters",
		"error.unauthorized":                 "Not logged in or session expired",
		"error.forbidden":                    "Access denied",
		"error.not_found":                    "Resource not found",
		"error.internal":                     "Internal server error",
		"error.admin_id_invalid":             "Invalid admin ID",
		"error.admin_id_type_invalid":        "Invalid admin ID type",
		"error.user_id_invalid":              "Invalid user ID",
		"error.user_id_type_invalid":         "Invalid user ID type",
		"error.jwt_secret_missing":           "Token secret is not configured",
		"error.auth_header_missing":          "Missing Authorization header",
		"error.auth_header_invalid":          "Malformed Authorization header",
		"error.token_invalid":                "Invalid token",
		"error.token_revoked":                "Token revoked, please log in again",
		"error.user_disabled":                "Account is disabled",
		"error.login_invalid":                "Invalid username or password",
		"error.login_too_many":               "Too many login attempts, try again in %d seconds",
		"error.rate_limited":                 "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable":       "Rate limiter unavailable",
		"error.validation":                   "Validation failed",
		"error.product_not_found":            "Product not found",
		"error.strategy_not_found":           "Pricing strategy not found",
		"error.category_not_found":           "Category not found",
		"error.no_active_pricing":            "Product has no active pricing",
		"error.order_not_found":              "Order not found",
		"error.user_not_found":               "User not found",
		"error.sole_active_strategy":         "Cannot delete the only active pricing strategy",
		"error.no_promotion_candidate":       "No active strategy can be promoted to primary",
		"error.no_primary_strategy":          "Product has no primary pricing strategy",
		"error.slug_exists":                  "Slug already exists",
		"error.currency_mismatch":            "Cart items use different currencies",
		"error.pricing_changed":              "Prices changed, please refresh the cart and try again",
		"error.volume_discount_invalid":      "Invalid volume discount rules",
		"error.invalid_quantity":             "Quantity must be greater than 0",
		"error.cart_empty":                   "Cart is empty",
		"error.cart_full":                    "Cart has reached its item limit",
		"error.product_not_available":        "Product is not available",
		"error.invalid_currency":             "Invalid currency code",
		"error.invalid_email":                "Invalid email address",
		"error.conflict":                     "Conflicting update, please refresh and retry",
		"error.pricing_mutation_failed":      "Failed to save pricing strategy",
		"error.pricing_resolve_failed":       "Failed to resolve price",
		"error.pricing_analysis_failed":      "Failed to analyze competitive pricing",
		"error.product_fetch_failed":         "Failed to fetch product",
		"error.product_create_failed":        "Failed to create product",
		"error.cart_fetch_failed":            "Failed to fetch cart",
		"error.cart_update_failed":           "Failed to update cart",
		"error.checkout_failed":              "Checkout failed",
		"error.order_fetch_failed":           "Failed to fetch order",
		"error.category_fetch_failed":        "Failed to fetch categories",
		"error.category_create_failed":       "Failed to create category",
		"error.authz_update_failed":          "Failed to update permissions",
		"error.authz_role_invalid":           "Unknown or invalid role",
		"validation.negative_base_price":           "Base price must not be negative",
		"validation.non_positive_conversion_rate":  "Conversion rate must be greater than 0",
		"validation.adjustment_below_minus_100":    "Adjustment percent must not be below -100",
		"validation.invalid_condition_combination": "Condition type does not match its category",
		"validation.invalid_condition_config":      "Invalid condition configuration",
		"validation.volume_range_overlap":          "Quantity range overlaps an existing strategy",
		"validation.primary_cannot_be_cleared":     "Cannot clear the only primary strategy, promote another one first",
		"validation.inactive_primary":              "An inactive strategy cannot be primary",
		"validation.band_percent_out_of_range":     "band_percent must be between 0 and 100",
		"validation.required":                      "Required field missing",
		"validation.conflict_with":                 "conflicts with strategy #%s",
		"trace.candidates":          "%s active strategies considered",
		"trace.matched":             "Matched strategy %s (%s satisfied the conditions)",
		"trace.fallback_primary":    "No strategy matched, using primary %s",
		"trace.fallback_oldest":     "No primary, using oldest strategy %s",
		"trace.base_price":          "Base price %s",
		"trace.adjustment":          "Adjusted by %s%%, strategy price %s",
		"trace.bulk_extra_discount": "Bulk extra discount %s%% for quantity %s, unit price %s",
		"trace.floor_clamped":       "Clamped to price range floor %s",
		"trace.final":               "Final unit price %s",
		"recommendation.raise_price":        "Priced %s%% below peer average, consider raising to %s",
		"recommendation.lower_price":        "Priced %s%% above peer average, consider lowering to %s",
		"recommendation.maintain_price":     "Price is in line with peers (deviation %s%%), keep it",
		"recommendation.highlight_discount": "Active discounts exist, highlight them on the product page",
		"recommendation.no_competition":     "No comparable products in this price band",
		"position.low":            "Below market",
		"position.competitive":    "Competitive",
		"position.high":           "Above market",
		"position.no_competition": "No competition",
	},
}
