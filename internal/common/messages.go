package common

// User-facing messages. Clients of the original service match on these strings.
const (
	MsgGenericError = "Bir hata oluştu."

	MsgRegistered      = "Sisteme başarıyla kayıt oldunuz."
	MsgLoginSucceeded  = "Başarılı bir şekilde giriş yaptınız"
	MsgBadCredentials  = "E posta adresi veya şifre hatalı"
	MsgAddressAdded    = "Sisteme adresiniz başarıyla eklendi."
	MsgAllProducts     = "Sistemdeki tüm ürünler."
	MsgAllOrders       = "Tüm siparişleriniz"
	MsgOrderDetail     = "Sipariş detayınız şu şekildedir."
	MsgActivityLog     = "Kullanıcı hareketleri."
	MsgOrderCreated    = "Siparişiniz başarıyla oluşturuldu."
	MsgProductUpdated  = "Ürün başarılı bir şekilde güncellendi."
	MsgProductInserted = "Ürün başarılı bir şekilde eklendi."

	MsgInvalidProductFmt    = "'%s' nolu ürün sistemde kayıtlı değil."
	MsgInvalidAddressFmt    = "'%s' nolu adres bu kullanıcıya ait değil."
	MsgInsufficientStockFmt = "'%s' nolu ürün için stok miktarı yetersiz."

	MsgEmailTaken      = "Bu e-posta adresi zaten kayıtlı."
	MsgPhoneTaken      = "Bu telefon numarası zaten kayıtlı."
	MsgValueTooLong    = "Uzunluk sınırını aştınız parametrelerinizi kontrol ediniz."
	MsgUnknownUserID   = "Bu userId sistemde kayıtlı değil."
	MsgInvalidPhone    = "Lütfen geçerli bir telefon numarası girin."
	MsgInvalidEmail    = "Lütfen geçerli bir email adresi girin."
	MsgFirstNameLength = "İsim uzunluk sınırını aştınız."
	MsgLastNameLength  = "Soyisim uzunluk sınırını aştınız."
	MsgBirthDateFormat = "Doğru bir doğum tarihi formatı giriniz YYYY-MM-DD"
	MsgFillAllFields   = "Lütfen tüm alanları doğru şekilde doldurun."

	MsgUnauthorized = "Unauthorized access!"
	MsgForbidden    = "Bu işlem için yetkiniz yok."
)
