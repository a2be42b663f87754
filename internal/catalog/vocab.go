package catalog

// Page vocabulary across storefront locales. Matching folds case and accents
// and only matches whole words, so a label never needs an accented and an
// unaccented spelling.

var totalLabels = []string{
	"Grand Total",
	"Order Total",
	"Total for this Order",
	"Total of this order",
	"Montant total TTC",
	"Total général du paiement",
	"Gesamtsumme",
	"Gesamtbetrag",
	"Total de este pedido",
	"Importe total",
	"Totale ordine",
	"Totale complessivo",
}

var subtotalLabels = []string{
	"Item(s) Subtotal",
	"Items Subtotal",
	"Sous-total des articles",
	"Sous-total",
	"Zwischensumme",
	"Subtotal de los productos",
	"Subtotale articoli",
	"Totale parziale",
}

var shippingLabels = []string{
	"Shipping & Handling",
	"Postage & Packing",
	"Frais de livraison",
	"Frais d'expédition",
	"Verpackung & Versand",
	"Versandkosten",
	"Gastos de envío",
	"Costi di spedizione",
	"Spedizione",
}

// shippingRefundLabels name the row cancelling the shipping charge. They are
// excluded from shipping matches since "Spedizione" also matches them.
var shippingRefundLabels = []string{
	"FREE Shipping",
	"Free Delivery",
	"Livraison gratuite",
	"Kostenlose Lieferung",
	"Envío gratis",
	"Spedizione gratuita",
}

var discountLabels = []string{
	"Subscribe & Save",
	"Spar-Abo",
	"Prévoyez et Économisez",
	"Suscríbete y ahorra",
	"Iscriviti e risparmia",
}

// taxLabels never contains a bare "tax", which would match the "Total before
// tax" row of US summaries. Canadian GST and PST have labels of their own.
var taxLabels = []string{
	"Estimated tax to be collected",
	"Tax Collected",
	"Sales Tax",
	"VAT",
	"TVA",
	"MwSt.",
	"MwSt",
	"USt.",
	"IVA",
}

var gstLabels = []string{
	"Estimated GST/HST",
	"GST/HST",
	"TPS/TVH",
	"GST",
	"HST",
}

var pstLabels = []string{
	"Estimated PST/RST/QST",
	"PST/RST/QST",
	"TVP/TVD/TVQ",
	"PST",
	"RST",
	"QST",
	"TVQ",
}

// taxExclusions mark total rows that name a tax without being one, like
// "Total before VAT", "Totale (IVA esclusa)" or "Total (incl. VAT)".
var taxExclusions = []string{
	"before",
	"excl.",
	"excluding",
	"incl.",
	"including",
	"avant",
	"hors",
	"inclus",
	"incluse",
	"vor",
	"ohne",
	"inkl.",
	"esclusa",
	"inclusa",
	"sin",
	"incluido",
}

var giftCardLabels = []string{
	"Gift Card Amount",
	"Gift Card",
	"Gift Certificate/Card",
	"Chèque-cadeau",
	"Geschenkgutschein",
	"Cheque regalo",
	"Buono regalo",
}

var refundLabels = []string{
	"Refund Total",
	"Total Refund",
	"Refund",
	"Remboursement",
	"Erstattung",
	"Reembolso",
	"Rimborso",
}

var orderNumberLabels = []string{
	"order number",
	"Order #",
	"Order#",
	"Numéro de commande",
	"Commande n°",
	"Bestellnummer",
	"Bestellnr.",
	"N.º de pedido",
	"Número de pedido",
	"Numero ordine",
}

var sellerLabels = []string{
	"Sold by",
	"Vendu par",
	"Verkauf durch",
	"Verkauft von",
	"Vendido por",
	"Venduto da",
}

var orderPlacedLabels = []string{
	"Order placed",
	"Ordered on",
	"Commande effectuée",
	"Commandé le",
	"Bestellung aufgegeben",
	"Bestellt am",
	"Pedido realizado",
	"Ordine effettuato",
}

var recipientLabels = []string{
	"Ship to",
	"Dispatch to",
	"Envoyer à",
	"Lieferung an",
	"Enviar a",
	"Invia a",
}

var digitalOrderLabels = []string{
	"Digital Order",
	"Commande numérique",
	"Digitale Bestellung",
	"Pedido digital",
	"Ordine digitale",
}

// labelElements are the elements that carry summary labels in every layout.
const labelElements = "span, td, th, b, div, li, bdi"
