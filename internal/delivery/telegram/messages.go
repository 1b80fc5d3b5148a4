package telegram

const welcomeMessage = `Merhaba! 👋 DEEP Premium Coffee'ye hoş geldiniz.

Özenle seçilmiş çekirdeklerden hazırlanan kahvelerimizi keşfedin:
/menu - Menüyü görüntüle
/contact - Bize ulaşın
/ask - Baristaya soru sorun

Dilediğiniz ürünü yazarak da arayabilirsiniz ☕`

const helpMessage = `🤖 Komutlar:

📱 Genel:
/start - Karşılama mesajı
/help - Yardım
/menu - Menü ve kategoriler
/contact - İletişim formu
/ask <soru> - Baristaya sor
/clear - Barista sohbet geçmişini temizle
/cancel - Açık formu iptal et

🔐 Editör:
/editor - Editör girişi
/add - Menüye yeni ürün ekle
/logout - Editör çıkışı
Excel (.xlsx) dosyası göndererek toplu ürün ekleyebilirsiniz.`
