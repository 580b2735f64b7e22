package i18n

// catalog 文案表，key 统一为 error.* / message.* 前缀
var catalog = map[string]map[string]string{
	LocaleVI: {
		"error.internal":           "Đã xảy ra lỗi, vui lòng thử lại sau.",
		"error.bad_request":        "Yêu cầu không hợp lệ.",
		"error.unauthorized":       "Vui lòng đăng nhập để tiếp tục.",
		"error.forbidden":          "Bạn không có quyền thực hiện thao tác này.",
		"error.not_found":          "Không tìm thấy dữ liệu.",
		"error.too_many_requests":  "Thao tác quá nhanh, vui lòng thử lại sau.",
		"error.cart_empty":         "Giỏ hàng của bạn đang trống.",
		"error.cart_item_missing":  "Sản phẩm không có trong giỏ hàng.",
		"error.product_not_found":  "Sản phẩm không tồn tại.",
		"error.product_off_sale":   "Sản phẩm hiện không còn kinh doanh.",
		"error.insufficient_stock": "Sản phẩm \"%s\" chỉ còn lại %d sản phẩm trong kho. Vui lòng giảm số lượng.",
		"error.invalid_quantity":   "Số lượng không hợp lệ.",
		"error.order_not_found":    "Không tìm thấy đơn hàng.",
		"error.order_transition":   "Không thể chuyển trạng thái đơn hàng.",
		"error.invalid_login":      "Tài khoản hoặc mật khẩu không đúng.",
		"error.account_inactive":   "Tài khoản hoặc mật khẩu không đúng.",
		"error.email_unverified":   "Tài khoản chưa xác thực email. Vui lòng kiểm tra hộp thư.",
		"error.email_exists":       "Email này đã được sử dụng.",
		"error.phone_exists":       "Số điện thoại này đã được sử dụng.",
		"error.invalid_email":      "Email không hợp lệ.",
		"error.invalid_phone":      "Số điện thoại không hợp lệ (9-11 chữ số).",
		"error.weak_password":      "Mật khẩu chưa đủ mạnh.",
		"error.password_min_length":      "Mật khẩu phải có ít nhất %d ký tự.",
		"error.password_require_upper":   "Mật khẩu phải chứa chữ in hoa.",
		"error.password_require_lower":   "Mật khẩu phải chứa chữ thường.",
		"error.password_require_number":  "Mật khẩu phải chứa chữ số.",
		"error.password_require_special": "Mật khẩu phải chứa ký tự đặc biệt.",
		"error.token_invalid":      "Liên kết xác thực không hợp lệ.",
		"error.token_expired":      "Liên kết xác thực đã hết hạn.",
		"error.token_used":         "Liên kết xác thực đã được sử dụng.",
		"error.captcha_required":   "Vui lòng nhập mã xác nhận.",
		"error.captcha_invalid":    "Mã xác nhận không đúng.",
		"error.oauth_disabled":     "Đăng nhập Google chưa được bật.",
		"error.oauth_state":        "Phiên đăng nhập Google không hợp lệ, vui lòng thử lại.",
		"error.email_send_failed":  "Không thể gửi email, vui lòng thử lại sau.",
		"error.user_not_found":     "Không tìm thấy người dùng.",
		"error.coupon_not_found":   "Mã giảm giá không tồn tại.",
		"error.coupon_code_exists": "Mã giảm giá đã tồn tại.",
		"error.upload_type":        "Định dạng tệp không được hỗ trợ.",
		"error.upload_too_large":   "Tệp vượt quá dung lượng cho phép.",
		"error.rating_invalid":     "Điểm đánh giá phải từ 1 đến 5.",
		"error.wrong_password":     "Mật khẩu hiện tại không đúng.",

		"error.shipping_info_missing":   "Vui lòng điền đầy đủ thông tin nhận hàng.",
		"error.slug_exists":             "Đường dẫn (slug) đã tồn tại.",
		"error.category_not_found":      "Không tìm thấy danh mục.",
		"error.brand_not_found":         "Không tìm thấy thương hiệu.",
		"error.review_exists":           "Bạn đã đánh giá sản phẩm này rồi.",
		"error.review_not_allowed":      "Chỉ khách đã nhận hàng mới có thể đánh giá.",
		"error.import_empty":            "Phiếu nhập kho phải có ít nhất một dòng.",
		"error.import_not_found":        "Không tìm thấy phiếu nhập kho.",
		"error.user_id_invalid":         "Phiên đăng nhập không hợp lệ.",
		"error.user_id_type_invalid":    "Phiên đăng nhập không hợp lệ.",
		"error.export_failed":           "Không thể xuất báo cáo, vui lòng thử lại.",
		"error.rate_limited":            "Thao tác quá nhanh, vui lòng thử lại sau %d giây.",
		"error.verify_token_interval":   "Vui lòng chờ %d giây trước khi yêu cầu gửi lại email xác thực.",
		"error.rate_limit_unavailable":  "Hệ thống đang bận, vui lòng thử lại sau.",
		"error.auth_header_missing":     "Thiếu thông tin xác thực.",
		"error.auth_header_invalid":     "Thông tin xác thực không hợp lệ.",
		"error.token_revoked":           "Phiên đăng nhập đã hết hiệu lực, vui lòng đăng nhập lại.",
		"error.user_disabled":           "Tài khoản đã bị khóa.",
		"error.jwt_secret_missing":      "Máy chủ chưa được cấu hình xác thực.",
		"message.register_success":   "Đăng ký thành công. Vui lòng kiểm tra email để xác thực tài khoản.",
		"message.verify_email_sent":  "Đã gửi email xác thực. Vui lòng kiểm tra hộp thư.",
		"message.email_verified":     "Xác thực email thành công. Bạn có thể đăng nhập.",
		"message.account_ready":      "Thiết lập tài khoản thành công. Bạn có thể đăng nhập.",
		"message.password_updated":   "Đổi mật khẩu thành công.",
		"message.order_placed":       "Đặt hàng thành công.",
		"message.order_confirm_body": "Đơn hàng %s của bạn đã được tiếp nhận. Dự kiến giao từ %s đến %s.",
	},
	LocaleEN: {
		"error.internal":           "Something went wrong, please try again later.",
		"error.bad_request":        "Invalid request.",
		"error.unauthorized":       "Please sign in to continue.",
		"error.forbidden":          "You are not allowed to perform this action.",
		"error.not_found":          "Resource not found.",
		"error.too_many_requests":  "Too many requests, please slow down.",
		"error.cart_empty":         "Your cart is empty.",
		"error.cart_item_missing":  "Item is not in your cart.",
		"error.product_not_found":  "Product does not exist.",
		"error.product_off_sale":   "Product is no longer available.",
		"error.insufficient_stock": "Only %[2]d units of \"%[1]s\" are left in stock. Please lower the quantity.",
		"error.invalid_quantity":   "Invalid quantity.",
		"error.order_not_found":    "Order not found.",
		"error.order_transition":   "Order status transition is not allowed.",
		"error.invalid_login":      "Account or password is incorrect.",
		"error.account_inactive":   "Account or password is incorrect.",
		"error.email_unverified":   "Email not verified yet. Please check your inbox.",
		"error.email_exists":       "This email is already in use.",
		"error.phone_exists":       "This phone number is already in use.",
		"error.invalid_email":      "Invalid email address.",
		"error.invalid_phone":      "Invalid phone number (9-11 digits).",
		"error.weak_password":      "Password is too weak.",
		"error.password_min_length":      "Password must be at least %d characters.",
		"error.password_require_upper":   "Password must contain an uppercase letter.",
		"error.password_require_lower":   "Password must contain a lowercase letter.",
		"error.password_require_number":  "Password must contain a digit.",
		"error.password_require_special": "Password must contain a special character.",
		"error.token_invalid":      "Verification link is invalid.",
		"error.token_expired":      "Verification link has expired.",
		"error.token_used":         "Verification link has already been used.",
		"error.captcha_required":   "Captcha is required.",
		"error.captcha_invalid":    "Captcha is incorrect.",
		"error.oauth_disabled":     "Google sign-in is not enabled.",
		"error.oauth_state":        "Google sign-in session is invalid, please retry.",
		"error.email_send_failed":  "Failed to send email, please try again later.",
		"error.user_not_found":     "User not found.",
		"error.coupon_not_found":   "Coupon does not exist.",
		"error.coupon_code_exists": "Coupon code already exists.",
		"error.upload_type":        "File type is not allowed.",
		"error.upload_too_large":   "File exceeds the size limit.",
		"error.rating_invalid":     "Rating must be between 1 and 5.",
		"error.wrong_password":     "Current password is incorrect.",

		"error.shipping_info_missing":   "Please fill in the full shipping information.",
		"error.slug_exists":             "Slug already exists.",
		"error.category_not_found":      "Category not found.",
		"error.brand_not_found":         "Brand not found.",
		"error.review_exists":           "You have already reviewed this product.",
		"error.review_not_allowed":      "Only customers who received the product can review it.",
		"error.import_empty":            "Import receipt needs at least one line.",
		"error.import_not_found":        "Import receipt not found.",
		"error.user_id_invalid":         "Invalid session.",
		"error.user_id_type_invalid":    "Invalid session.",
		"error.export_failed":           "Failed to export the report, please retry.",
		"error.rate_limited":            "Too many attempts, please retry after %d seconds.",
		"error.verify_token_interval":   "Please wait %d seconds before requesting another verification email.",
		"error.rate_limit_unavailable":  "The system is busy, please try again later.",
		"error.auth_header_missing":     "Missing credentials.",
		"error.auth_header_invalid":     "Invalid credentials.",
		"error.token_revoked":           "Session is no longer valid, please sign in again.",
		"error.user_disabled":           "Account has been disabled.",
		"error.jwt_secret_missing":      "Server authentication is not configured.",
		"message.register_success":   "Registered successfully. Please check your email to verify the account.",
		"message.verify_email_sent":  "Verification email sent. Please check your inbox.",
		"message.email_verified":     "Email verified. You can sign in now.",
		"message.account_ready":      "Account set up. You can sign in now.",
		"message.password_updated":   "Password updated.",
		"message.order_placed":       "Order placed successfully.",
		"message.order_confirm_body": "Your order %s has been received. Estimated delivery between %s and %s.",
	},
}
