package scoring

// Classification lists for detected web technologies. Matching happens on
// normalized technology names reported by the fingerprinting step; the
// lists are deliberately broad to maximize recall on real-world sites.

// Generators that produce fully static sites. A hit is strong evidence of
// a static build.
var staticSiteGenerators = []string{
	"ablog", "ace", "acrylamid", "adduce", "akashacms", "akashic", "antwar", "appernetic",
	"assemble", "astro", "aurora", "automad", "awestruct", "axiom", "aym cms", "baker", "balloon",
	"bam", "bashblog", "basildon", "bazinga", "beetle", "benjen", "bitbucket cloud", "blacksmith",
	"blag", "blatter", "blazeblogger", "bliper", "blode", "blogc", "blogc++", "blogen", "bloggrify",
	"blogit", "blogofile", "blogpy", "blosxom", "blug", "bonsai", "bramble mvc", "bread",
	"bricolage cms", "bridgetown", "broccoli taco", "brochure", "bryar", "bunto", "buster",
	"cabin", "cactus", "caixw-blogit", "calepin", "capro", "carew", "catsup", "cecil", "chili",
	"chisel", "chronicle", "cipherpress", "cl-blog-generator", "cl-yag", "cloud cannon", "cmints",
	"cobalt.rs", "codex", "coisas", "coleslaw", "composer", "contentful", "cory", "create static web",
	"cub", "curvenote", "cyrax", "cytoplasm", "dapper", "daux.io", "deplate", "desi", "django-medusa",
	"django-staticgen", "djangothis", "docknot", "docpad", "docta", "docusaurus", "drapache",
	"drfrederson", "dropbox-blog", "dropplets", "droppress", "drupan", "dssg", "dsw", "dwttool",
	"dynamicmatic", "easystatic", "ecstatic", "electro", "eleventy", "embellih", "enfield", "engineer",
	"equiprose", "fairytale", "fantasticwindmill", "fblog", "firmant", "fjord", "flamel",
	"fledermaus", "flim", "floyd", "fmpp", "ford.py", "frank", "franklin", "frog", "frozen-flask",
	"funnel", "garoozis", "gatsby", "gen", "generic static site generator", "genesis", "gerablog",
	"gettheshitdone", "ghost-render", "github pages", "gitlab pages", "glyph", "go-static!",
	"goldbarg", "gollum-site", "gor", "gostatic", "grain", "grav", "grav administration panel", "graze",
	"grender", "griffin", "grow", "growl", "grunt-generator", "gsl", "guetzli", "gulp-ssg", "gustav",
	"habit", "haggis", "hakyll", "halwa", "hammer", "hanayo", "handcrank", "handle", "handroll",
	"happyplan", "harmonic", "haroldjs", "haroopress", "harp", "hastie", "haunt", "heckle",
	"helpful site", "hepek", "hexo", "hid", "high voltage", "hsc", "htmd", "hublo", "hubpress", "hugo",
	"hyde", "hyde (chicken)", "hydrastic", "igapyon", "igor", "ikiwiki", "ink", "ipsum genera", "jagss",
	"jbake", "jedie", "jekxll", "jekyde", "jekyll", "jekyll admin", "jekyll now", "jekytrum",
	"jem-press", "jen", "jigsaw", "jinjet", "jkl", "jott", "journo", "jr", "jssg", "jstatico",
	"kalastatic", "kel", "kerouac", "kirby", "kkr", "korma", "kulfon", "lambda pad", "lannister",
	"lanyon", "latemp", "lava", "laze", "lazyblorg", "leeflets", "lektor", "lenscap", "leo",
	"letterpress", "lettersmith", "liara", "lightning", "liquidluck", "log4brains", "logya", "luapress",
	"lume", "machined", "madoko", "magneto", "makeblog", "makefly", "makesite.py", "markbox",
	"markdoc", "markdown-styles", "markx", "massimo", "maven site plugin", "mdwiki", "mecha",
	"meinhof", "metalsmith", "miblo", "middleman", "minimal", "minoriwiki", "misakai baker", "misaki",
	"mkdocs", "mksite", "mkws", "monkeyman", "mulder", "muleify", "mynt", "nanoblogger", "nanoc",
	"nanogen", "nestacms", "netlify drop", "neverland", "newcomen", "nib", "nibbleblog",
	"nico", "nikola", "node-blog", "node-qssg", "nodeache", "noflo-jekyll", "noter",
	"o-blog", "oak", "obelisk", "ocam", "octopress", "onessg", "operator-dd3", "opoopress", "orca",
	"orchid", "page", "pagegen", "pagen", "pancake.io", "pansite", "papery", "pelican", "perun",
	"petrify", "phenomic", "phileas", "phlyblog", "phpetite", "piecrust", "pilcrow", "pith", "pmblog",
	"poet", "pointless", "polo", "poole", "pop", "portable-php", "powersite", "pretzel", "prismic",
	"propeller", "prose", "prosopopee", "publii", "pulse cms", "punch", "pyblosxom", "pyblue", "pyll",
	"qgoda", "quietly confident", "quill", "rakeweb", "rant", "rassmalog", "rawk", "reacat",
	"react-static", "react-static-site", "reactivate", "read the docs (rtd)", "really static", "refrain",
	"regenerate", "reptar", "riji", "rizzo", "romulus", "roots", "rosid", "rstblog", "rubyfrontier",
	"ruhoh", "s2gen", "saait", "sblg", "scroll", "sculpin", "second crack", "serif", "serious-chicken",
	"serve", "sessg", "sg", "sg.py", "sgg", "shelob", "shinobi", "shire", "shonku", "silex", "simiki",
	"simple", "simple-static", "simsalabash", "site builder", "site builder console", "site44",
	"sitegen (dart)", "sitegen (moonscript)", "sitio", "smallest blogger", "snowshoe", "soapbox",
	"socrates", "sortastatic", "speechhub", "spelt", "spg", "sphinx", "spike", "spina", "spress",
	"squid", "squido", "squirrel", "stacey", "stacktic", "stad", "stagen", "stapy", "stasis",
	"stasis.clj", "statamic", "stati", "static", "static site boilerplate", "static website starter kit",
	"static-io", "static-weber", "static2000", "staticjinja", "staticmatic", "staticmatic2",
	"staticpress", "staticpy", "staticsite", "staticsmoothie", "staticvolt", "statik", "statiq",
	"statix", "statocles", "strangecase", "stratic", "striker", "surge", "susi", "swg", "swsg",
	"szyslak", "tacot", "tags", "tagy", "tahchee", "tapestry", "tarbell", "tclog", "tclssg", "techy",
	"templer", "thot", "tinkerer", "toto", "tribo", "trofaf", "ultra simple site maker", "urubu",
	"utterson", "uzu", "vee", "vegetables", "vimwiki", "voldemort", "volt", "voodoopad", "vuepress",
	"wadoo", "wallflower", "wanna", "weaver", "webby", "webgen", "webhook", "websleydale", "wheat",
	"wikismith", "wintersmith", "wok", "woods", "wordsister", "wp2static", "wpwmm4", "wyam", "yana",
	"yassg", "yellow", "yggdrasil", "yozuch", "yst", "zas", "zenweb", "zine", "zodiac", "zola",
	"zucchini",
}

// Hosts that serve static content only.
var staticHostPlatforms = []string{
	"aws s3", "azure static web apps", "cloudflare pages", "gitlab pages",
	"kinsta static site hosting", "netlify", "pgs", "surge", "vercel",
}

// Technologies implying server-side page generation.
var dynamicFrameworks = []string{
	"asp.net", "bfc", "csla", "monorail", "cppcms", "drogon", "poco", "wt",
	"coldbox", "phoenix", "snap", "yesod", "apache click", "apache ofbiz", "apache shale",
	"apache sling", "apache struts", "apache tapestry", "apache wicket", "appfuse", "mojarra",
	"eclipse rap", "grails", "google web toolkit", "jboss seam", "jwt", "netty", "openlaszlo",
	"oracle adf", "play", "spring", "stripes", "vaadin", "wavemaker", "webobjects",
	"express.js", "fastify", "meteor", "nestjs", "nuxt.js", "remix", "sails.js",
	"sveltekit", "catalyst", "dancer", "maypole", "mojolicious", "cakephp", "codeigniter",
	"fat-free", "fuelphp", "gyroscope", "jamroom", "kajona", "laminas", "laravel", "li3",
	"phalcon", "pop php", "prado", "silverstripe", "smart.framework", "symfony", "yii",
	"bluebream", "cherrypy", "cubicweb", "django", "fastapi", "flask", "grok", "gunicorn",
	"pylons", "pyramid", "tornado", "turbogears", "web2py", "zope 2", "padrino",
	"ruby on rails", "sinatra", "lift", "play (scala)", "scalatra", "aida/web", "oracle apex",
	"flex", "grails (groovy)", "morfik", "opa", "openacs", "seaside",
}

// CMS runtimes rendering content server-side.
var cmsRuntimes = []string{
	"WordPress", "Drupal",
}

// Terms pointing at containers, VMs or other isolated runtimes. Matched
// with word boundaries against flattened infrastructure and technology
// text.
var isolationTerms = []string{
	"apptainer", "borg", "containerd", "denali", "diego", "docker",
	"docker-compose", "docker-swarm", "dockercompose", "dockerd", "dockerswarm",
	"esxi", "etcd", "freebsd-jail", "k8s", "kubernetes", "kvm", "libvirtd",
	"lxc", "lxcfs", "lxd", "marathon", "mesos", "openvz", "podman",
	"qemu-kvm", "rkt", "rocket", "runc", "singularity", "solaris-zone",
	"swarm", "virtuozzo", "vlx", "vmtoolsd", "vmware", "vmware-guestd",
	"vzctl", "vzlist", "xen", "xenserver", "xtratum", "zoneadmd",
}

// License keywords. Proprietary patterns are checked first: "MIT License,
// all rights reserved" counts as proprietary.
var openLicenseKeywords = []string{
	"mit", "gpl", "lgpl", "agpl", "apache", "bsd", "mpl",
	"cc-by", "cc by", "cc0", "creative commons", "public domain",
	"eupl", "osl", "artistic",
}

var proprietaryKeywords = []string{
	"all rights reserved",
	"alle rechte vorbehalten",
	"proprietary",
	"commercial",
	"nicht öffentlich",
	"closed",
	"no-license",
	"no license",
	"copyright",
	"©",
}

// Strong open/closed-source keywords for technology descriptions. Weak
// terms like "free" are deliberately excluded.
var openSourceKeywords = []string{
	"open source", "open-source", "foss", "free and open",
	"libre software",
}

var closedSourceKeywords = []string{
	"closed source", "closed-source", "proprietary", "commercial only",
	"paid only", "proprietär", "nur kommerziell", "lizenzpflichtig",
}
