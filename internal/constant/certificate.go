package constant

// Sentinel value of the domain selector meaning "use the free-text
// custom domain instead".
const DOMAIN_CUSTOM = "custom"

// Max accepted certificate upload size in bytes.
const MAX_UPLOAD_SIZE = 10 << 20
