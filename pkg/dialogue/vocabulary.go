package dialogue

// Turkish domain vocabulary feeding the prompt renderer. Loaded as immutable
// tables; callers must not mutate the returned slices.

var agentNames = []string{
	"Ahmet", "Mehmet", "Ayşe", "Fatma", "Ali", "Veli", "Zeynep", "Elif",
	"Burak", "Cem", "Deniz", "Ece", "Furkan", "Gül", "Hakan", "İrem",
	"Kemal", "Leyla", "Murat", "Nalan", "Oğuz", "Pınar", "Rıza", "Seda",
	"Tolga", "Ufuk", "Volkan", "Yasemin", "Zeki", "Aslı",
}

var turkishFillers = []string{
	"tabii ki", "elbette", "memnuniyetle", "bir saniye lütfen", "hemen bakıyorum",
	"anlıyorum", "haklısınız", "kesinlikle", "doğru söylüyorsunuz", "tamamdır",
	"peki", "tamam", "iyi", "güzel", "süper", "mükemmel", "harika", "çok güzel",
	"şöyle", "yani", "işte", "böyle", "hemen", "derhal", "şimdi", "bir dakika",
	"nasıl istersen", "öyle", "doğru", "aynen", "kesin", "mutlaka", "herhalde",
}

var telecomPackages = []string{
	"Süper Paket", "Mega Paket", "Ultra Paket", "Ekonomik Paket", "Aile Paketi",
	"Gençlik Paketi", "İş Paketi", "Premium Paket", "Standart Paket", "Özel Paket",
}

var telecomServices = []string{
	"Fiber internet", "ADSL", "VDSL", "Mobil internet", "Sabit hat",
	"Dijital TV", "Roaming", "SMS paketi", "Konuşma paketi", "Data paketi",
}

var commonIssues = []string{
	"bağlantı sorunu", "yavaş internet", "kesinti", "fatura hatası",
	"ödeme problemi", "modem sorunu", "sinyal problemi", "hat arızası",
}

func AgentNames() []string     { return agentNames }
func TurkishFillers() []string { return turkishFillers }
func TelecomPackages() []string { return telecomPackages }
func TelecomServices() []string { return telecomServices }
func CommonIssues() []string    { return commonIssues }
